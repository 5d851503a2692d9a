package fanbox

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the API host used by the web client
	DefaultBaseURL = "https://api.fanbox.cc"

	// DefaultOrigin must accompany every API request or it is rejected
	DefaultOrigin = "https://fanbox.cc"

	// SessionCookieName is the cookie carrying the logged-in session
	SessionCookieName = "FANBOXSESSID"

	// ListCreatorEndpoint lists a creator's posts, newest first
	ListCreatorEndpoint = "/post.listCreator"

	// PostInfoEndpoint returns a single post with its content
	PostInfoEndpoint = "/post.info"

	// DefaultPageSize is the number of posts requested from ListCreatorEndpoint.
	// Only the first page is ever fetched.
	DefaultPageSize = 300
)

// ListCreatorURL constructs the URL listing a creator's posts
func ListCreatorURL(baseURL, creatorID string, limit int) string {
	params := url.Values{}
	params.Set("creatorId", creatorID)
	params.Set("limit", strconv.Itoa(limit))

	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), ListCreatorEndpoint, params.Encode())
}

// PostInfoURL constructs the URL for a post's detail
func PostInfoURL(baseURL, postID string) string {
	params := url.Values{}
	params.Set("postId", postID)

	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), PostInfoEndpoint, params.Encode())
}

// SanitizeCreatorID strips the decorations users paste along with a
// creator id: a leading "@", surrounding spaces and trailing slashes.
func SanitizeCreatorID(creatorID string) string {
	creatorID = strings.TrimSpace(creatorID)
	creatorID = strings.TrimPrefix(creatorID, "@")
	return strings.TrimRight(creatorID, "/ ")
}
