// Package fanbox provides a client for the fanbox web API.
//
// Every request carries the session cookie and the Origin header the API
// requires. The client lists a creator's posts (first page only), fetches
// post details and opens media for download. MediaURLs derives the
// ordered list of files to fetch from a post's content.
//
//	client := fanbox.NewClient(&cfg.Fanbox, session, log)
//	page, err := client.ListPosts(ctx, "creator")
//	if err != nil {
//	    // HTTP failure, or errors.ErrorTypeMalformed when body.items is absent
//	}
//	post, err := client.GetPost(ctx, page.Items[0].ID)
//	// post is nil when the detail could not be decoded
package fanbox
