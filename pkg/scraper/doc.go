// Package scraper runs a download for one creator.
//
// A run is strictly sequential:
//
//	list posts -> assign prefixes -> for each post: fetch detail ->
//	extract media URLs -> name files -> download each
//
// Progress and warnings go to the console's diagnostic stream. A listing
// without usable data ends the run with ErrListingFailed; HTTP failures
// from the API end it with the underlying error. A post whose detail is
// unavailable, or a media file that fails to download, is skipped with a
// warning.
package scraper
