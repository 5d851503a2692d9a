package scraper

import (
	"context"
	"errors"
	"fmt"

	"fanboxdl/internal/downloader"
	apperrors "fanboxdl/pkg/errors"
	"fanboxdl/pkg/fanbox"
	"fanboxdl/pkg/logger"
	"fanboxdl/pkg/planner"
	"fanboxdl/pkg/storage"
	"fanboxdl/pkg/ui"
)

// ErrListingFailed is returned when the creator's listing holds no usable
// data. The failure has already been reported on the console.
var ErrListingFailed = errors.New("couldn't fetch posts")

// Options control a run
type Options struct {
	OutputDir string
	Overwrite bool
	DryRun    bool
	Numbering planner.Numbering
}

// Summary counts what a run did
type Summary struct {
	Posts        int
	PostsSkipped int
	Media        int
	Planned      int
	Written      int
	Existing     int
	Failed       int
}

// Scraper downloads every post of a creator
type Scraper struct {
	client     FanboxClient
	storage    *storage.Manager
	downloader *downloader.Downloader
	console    *ui.Console
	opts       Options
	logger     logger.Logger
}

// New creates a Scraper
func New(client FanboxClient, console *ui.Console, opts Options, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}

	store := storage.NewManager(opts.Overwrite)

	return &Scraper{
		client:     client,
		storage:    store,
		downloader: downloader.New(client, store, console, opts.DryRun, log),
		console:    console,
		opts:       opts,
		logger:     log,
	}
}

// Run lists the creator's posts and downloads the media of each, one post
// at a time. A post whose detail is unavailable is skipped with a warning.
// An HTTP failure on either API endpoint ends the run.
func (s *Scraper) Run(ctx context.Context, creatorID string) (*Summary, error) {
	log := s.logger.WithField("creator", creatorID)

	page, err := s.client.ListPosts(ctx, creatorID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeMalformed) {
			log.WithError(err).Debug("listing has no usable data")
			s.console.Error("Couldn't fetch posts of %s", creatorID)
			return nil, fmt.Errorf("%w of %s: %v", ErrListingFailed, creatorID, err)
		}
		return nil, fmt.Errorf("failed to list posts of %s: %w", creatorID, err)
	}

	if page.HasMore() {
		s.console.Warning("Only the %d newest posts in the fanbox are downloaded.", s.client.PageSize())
	}

	posts := page.Items
	prefixes := planner.Prefixes(posts, s.opts.Numbering)
	summary := &Summary{Posts: len(posts)}

	// file counts come from storage, relative to the start of this run
	written, kept := s.storage.WrittenCount(), s.storage.SkippedCount()
	tally := func() *Summary {
		summary.Written = s.storage.WrittenCount() - written
		summary.Existing = s.storage.SkippedCount() - kept
		return summary
	}

	log.InfoWithFields("starting download", map[string]interface{}{
		"posts":   len(posts),
		"dry_run": s.opts.DryRun,
	})

	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			return tally(), err
		}

		s.console.Progress(post.ID, prefixes[i], i, len(posts))

		if err := planner.CheckPost(post); err != nil {
			s.console.Warning("Skipping post %s: %v", post.ID, err)
			summary.PostsSkipped++
			continue
		}

		items, err := s.plan(ctx, post.ID, prefixes[i])
		if err != nil {
			return tally(), err
		}
		if items == nil {
			s.console.Warning("Couldn't fetch post %s", post.ID)
			summary.PostsSkipped++
			continue
		}

		summary.Media += len(items)
		for _, result := range s.downloader.DownloadAll(ctx, items) {
			switch {
			case result.Error != nil:
				summary.Failed++
				s.console.Warning("Couldn't download %s: %v", result.Item.URL, result.Error)
			case result.Planned:
				summary.Planned++
			}
		}
	}

	tally()
	log.InfoWithFields("download finished", map[string]interface{}{
		"posts":         summary.Posts,
		"posts_skipped": summary.PostsSkipped,
		"written":       summary.Written,
		"existing":      summary.Existing,
		"failed":        summary.Failed,
	})

	return summary, nil
}

// plan fetches a post's detail and names its media. It returns nil items
// when the detail is unavailable.
func (s *Scraper) plan(ctx context.Context, postID, prefix string) ([]planner.MediaItem, error) {
	post, err := s.client.GetPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post %s: %w", postID, err)
	}
	if post == nil {
		return nil, nil
	}

	content, ok := post.Content()
	if !ok {
		s.logger.DebugWithFields("post has no viewable body", map[string]interface{}{
			"post_id":    postID,
			"restricted": post.IsRestricted,
		})
		return nil, nil
	}

	urls := fanbox.MediaURLs(post.CoverImageURL, content)
	return planner.MediaItems(s.opts.OutputDir, prefix, urls), nil
}
