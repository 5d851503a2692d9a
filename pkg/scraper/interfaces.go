package scraper

import (
	"context"
	"io"

	"fanboxdl/pkg/fanbox"
)

// FanboxClient defines the API operations a run needs
type FanboxClient interface {
	ListPosts(ctx context.Context, creatorID string) (*fanbox.PostPage, error)
	GetPost(ctx context.Context, postID string) (*fanbox.Post, error)
	DownloadMedia(ctx context.Context, url string) (io.ReadCloser, error)
	PageSize() int
}
