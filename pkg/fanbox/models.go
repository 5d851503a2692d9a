package fanbox

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// PostSummary is one entry of a creator's post listing
type PostSummary struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	CreatorID         string `json:"creatorId"`
	PublishedDatetime string `json:"publishedDatetime"`
	UpdatedDatetime   string `json:"updatedDatetime"`
	FeeRequired       int    `json:"feeRequired"`
	IsRestricted      bool   `json:"isRestricted"`
}

// PostPage is the first page of a creator's listing. NextURL is nil when
// the API sent no continuation or sent null.
type PostPage struct {
	Items   []PostSummary
	NextURL *string
}

// HasMore reports whether the API offered a continuation page. Any
// non-null nextUrl counts, including an empty one.
func (p *PostPage) HasMore() bool {
	return p.NextURL != nil
}

// listResponse mirrors post.listCreator. Pointers distinguish a missing
// field from an empty one.
type listResponse struct {
	Body *struct {
		Items   *[]PostSummary `json:"items"`
		NextURL *string        `json:"nextUrl"`
	} `json:"body"`
}

// infoResponse mirrors post.info
type infoResponse struct {
	Body *Post `json:"body"`
}

// Post is the detail of a single post as returned by post.info
type Post struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	CreatorID         string          `json:"creatorId"`
	PublishedDatetime string          `json:"publishedDatetime"`
	CoverImageURL     string          `json:"coverImageUrl"`
	IsRestricted      bool            `json:"isRestricted"`
	Body              json.RawMessage `json:"body"`
}

// Image is an uploaded picture
type Image struct {
	ID           string
	Extension    string
	Width        int64
	Height       int64
	OriginalURL  string
	ThumbnailURL string
}

// File is an uploaded attachment
type File struct {
	ID        string
	Name      string
	Extension string
	Size      int64
	URL       string
}

// PostBody is the content of a post. ImageMap and FileMap keep the key
// order of the payload, which is the order the blocks reference them.
type PostBody struct {
	Images   []Image
	ImageMap []Image
	Files    []File
	FileMap  []File
}

// Content parses the post's body. It returns false when the body is
// missing, null or an empty object, which is how the API presents posts
// the session may not view.
func (p *Post) Content() (*PostBody, bool) {
	if len(p.Body) == 0 {
		return nil, false
	}

	body := gjson.ParseBytes(p.Body)
	if !body.IsObject() || len(body.Map()) == 0 {
		return nil, false
	}

	content := &PostBody{}
	body.Get("images").ForEach(func(_, v gjson.Result) bool {
		content.Images = append(content.Images, imageFrom(v))
		return true
	})
	body.Get("imageMap").ForEach(func(_, v gjson.Result) bool {
		content.ImageMap = append(content.ImageMap, imageFrom(v))
		return true
	})
	body.Get("files").ForEach(func(_, v gjson.Result) bool {
		content.Files = append(content.Files, fileFrom(v))
		return true
	})
	body.Get("fileMap").ForEach(func(_, v gjson.Result) bool {
		content.FileMap = append(content.FileMap, fileFrom(v))
		return true
	})

	return content, true
}

func imageFrom(v gjson.Result) Image {
	return Image{
		ID:           v.Get("id").String(),
		Extension:    v.Get("extension").String(),
		Width:        v.Get("width").Int(),
		Height:       v.Get("height").Int(),
		OriginalURL:  v.Get("originalUrl").String(),
		ThumbnailURL: v.Get("thumbnailUrl").String(),
	}
}

func fileFrom(v gjson.Result) File {
	return File{
		ID:        v.Get("id").String(),
		Name:      v.Get("name").String(),
		Extension: v.Get("extension").String(),
		Size:      v.Get("size").Int(),
		URL:       v.Get("url").String(),
	}
}
