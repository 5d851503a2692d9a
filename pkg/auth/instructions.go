package auth

// CookieFileGuide explains how to obtain the session cookie. It is shown
// in the command help.
const CookieFileGuide = `The cookie file holds the value of your FANBOXSESSID cookie and nothing else.

To get it:
  1. Log in to https://www.fanbox.cc in your browser
  2. Open Developer Tools (F12) and go to Application/Storage > Cookies
  3. Select https://www.fanbox.cc and copy the value of FANBOXSESSID
  4. Save it to a file readable only by you, e.g.
       umask 077 && pbpaste > ~/.fanbox-cookie

Never share this file: anyone holding the value is logged in as you.`
