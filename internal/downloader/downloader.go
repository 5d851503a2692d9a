package downloader

import (
	"context"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"fanboxdl/pkg/logger"
	"fanboxdl/pkg/planner"
)

// MediaSource opens remote media
type MediaSource interface {
	DownloadMedia(ctx context.Context, url string) (io.ReadCloser, error)
}

// MediaStorage persists media to disk
type MediaStorage interface {
	ShouldWrite(dest string) bool
	Skip(dest string)
	Save(r io.Reader, dest string) (int64, error)
}

// PlanPrinter reports downloads a dry run would perform
type PlanPrinter interface {
	Planned(url, dest string)
}

// Result represents the outcome of one download
type Result struct {
	Item     planner.MediaItem
	Planned  bool
	Written  bool
	Skipped  bool
	Size     int64
	Duration time.Duration
	Error    error
}

// Downloader fetches media items one at a time
type Downloader struct {
	source  MediaSource
	storage MediaStorage
	printer PlanPrinter
	dryRun  bool
	logger  logger.Logger
}

// New creates a downloader. In dry-run mode items are only reported to
// printer; source and storage are never touched.
func New(source MediaSource, storage MediaStorage, printer PlanPrinter, dryRun bool, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Downloader{
		source:  source,
		storage: storage,
		printer: printer,
		dryRun:  dryRun,
		logger:  log,
	}
}

// Download retrieves item.URL into item.Dest. An existing destination is
// left alone unless the storage overwrites, and is not fetched at all.
func (d *Downloader) Download(ctx context.Context, item planner.MediaItem) Result {
	result := Result{Item: item}

	if d.dryRun {
		d.printer.Planned(item.URL, item.Dest)
		result.Planned = true
		return result
	}

	if !d.storage.ShouldWrite(item.Dest) {
		d.storage.Skip(item.Dest)
		result.Skipped = true
		logger.LogDownload(d.logger, item.URL, item.Dest, false, nil)
		return result
	}

	start := time.Now()
	body, err := d.source.DownloadMedia(ctx, item.URL)
	if err != nil {
		result.Error = err
		logger.LogDownload(d.logger, item.URL, item.Dest, false, err)
		return result
	}
	defer body.Close()

	result.Size, result.Error = d.storage.Save(body, item.Dest)
	result.Duration = time.Since(start)
	if result.Error != nil {
		logger.LogDownload(d.logger, item.URL, item.Dest, false, result.Error)
		return result
	}

	result.Written = true
	d.logger.DebugWithFields("saved media", map[string]interface{}{
		"dest":     item.Dest,
		"size":     humanize.Bytes(uint64(result.Size)),
		"duration": result.Duration,
	})

	return result
}

// DownloadAll downloads items in order and returns one result per item
func (d *Downloader) DownloadAll(ctx context.Context, items []planner.MediaItem) []Result {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		results = append(results, d.Download(ctx, item))
	}
	return results
}
