package planner

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// MediaItem is one file to fetch and where it goes
type MediaItem struct {
	URL  string
	Dest string
}

// Extension returns everything after the last "." of url, or the whole
// url when it has none. The result is not checked against known types.
func Extension(url string) string {
	return url[strings.LastIndex(url, ".")+1:]
}

// MediaItems names each URL of a post "{outputDir}/{prefix}_{n}.{ext}".
// n counts from zero and is padded to the number of digits in len(urls).
func MediaItems(outputDir, prefix string, urls []string) []MediaItem {
	width := len(strconv.Itoa(len(urls)))

	items := make([]MediaItem, 0, len(urls))
	for n, url := range urls {
		name := fmt.Sprintf("%s_%0*d.%s", prefix, width, n, Extension(url))
		items = append(items, MediaItem{
			URL:  url,
			Dest: filepath.Join(outputDir, filepath.FromSlash(name)),
		})
	}
	return items
}
