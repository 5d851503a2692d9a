package fanbox

import (
	"github.com/samber/lo"
)

// MediaURLs returns the URLs to download for a post in their canonical
// order: cover image, inline images, mapped images, files, mapped files.
// An empty cover image is left out rather than holding a slot, as are
// entries without a URL.
func MediaURLs(coverImageURL string, body *PostBody) []string {
	var urls []string
	if coverImageURL != "" {
		urls = append(urls, coverImageURL)
	}
	if body == nil {
		return urls
	}

	imageURL := func(img Image, _ int) string { return img.OriginalURL }
	fileURL := func(f File, _ int) string { return f.URL }

	urls = append(urls, lo.Map(body.Images, imageURL)...)
	urls = append(urls, lo.Map(body.ImageMap, imageURL)...)
	urls = append(urls, lo.Map(body.Files, fileURL)...)
	urls = append(urls, lo.Map(body.FileMap, fileURL)...)

	return lo.Compact(urls)
}
