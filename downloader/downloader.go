package downloader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/gistgrab/gistgrab/github"
)

// Downloader writes gists to local storage with a bounded number of
// concurrent gist downloads.
type Downloader struct {
	fetcher  github.RawFetcher
	fs       afero.Fs
	logger   zerolog.Logger
	observer ResultObserver
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithFs replaces the filesystem gists are written to. Defaults to the
// OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(d *Downloader) {
		if fs != nil {
			d.fs = fs
		}
	}
}

// WithObserver registers an observer notified of every gist's outcome.
func WithObserver(observer ResultObserver) Option {
	return func(d *Downloader) {
		d.observer = observer
	}
}

// New creates a Downloader that fetches file content through fetcher.
func New(fetcher github.RawFetcher, logger zerolog.Logger, opts ...Option) *Downloader {
	d := &Downloader{
		fetcher: fetcher,
		fs:      afero.NewOsFs(),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// DownloadAll downloads every gist in the batch to dest, running at most
// concurrency gist downloads at a time. Files within a gist are fetched
// one after another; the bound applies across gists only.
//
// A failing file marks its gist as failed with the first error and leaves
// already-written files on disk, but never aborts sibling gists. The
// returned Report always covers the whole batch; DownloadAll itself only
// errors on an invalid concurrency, before any work starts.
func (d *Downloader) DownloadAll(ctx context.Context, gists []github.Gist, concurrency int, dest string) (Report, error) {
	if concurrency < 1 {
		return Report{}, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, concurrency)
	}

	var report Report
	if len(gists) == 0 {
		return report, nil
	}

	workers := concurrency
	if workers > len(gists) {
		workers = len(gists)
	}

	// Fixed worker pool fed from a channel: the workers are the
	// concurrency permits, so at most `workers` gists are in flight and
	// pending gists cost nothing beyond their slice slot.
	jobs := make(chan github.Gist)
	outcomes := make(chan Outcome, len(gists))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for gist := range jobs {
				outcome := d.downloadGist(ctx, gist, dest)
				if d.observer != nil {
					d.observer.OnGistResult(outcome)
				}
				outcomes <- outcome
			}
			// Per-gist errors are captured in outcomes, never
			// returned, so one bad gist cannot cancel the group.
			return nil
		})
	}

	for _, gist := range gists {
		jobs <- gist
	}
	close(jobs)

	g.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.Failed() {
			report.Failed = append(report.Failed, outcome)
			continue
		}
		report.Downloaded++
		report.FilesWritten += outcome.Files
	}

	d.logger.Info().
		Int("downloaded", report.Downloaded).
		Int("failed", len(report.Failed)).
		Str("destination", dest).
		Msg("Download batch finished")

	return report, nil
}

// downloadGist fetches and writes every file of one gist, in sorted
// filename order.
func (d *Downloader) downloadGist(ctx context.Context, gist github.Gist, dest string) Outcome {
	outcome := Outcome{GistID: gist.ID}

	baseDir := TargetDir(dest, gist.ID)
	if err := d.fs.MkdirAll(baseDir, 0o755); err != nil {
		outcome.Err = fmt.Errorf("failed to create %s: %w", baseDir, err)
		outcome.Cause = CauseIO
		return outcome
	}

	for _, name := range gist.SortedFileNames() {
		file := gist.Files[name]

		content, err := d.fetcher.FetchRaw(ctx, file.RawURL)
		if err != nil {
			outcome.Err = fmt.Errorf("failed to fetch %s: %w", name, err)
			outcome.Cause = classifyCause(err)
			break
		}

		path := TargetPath(dest, gist.ID, name)
		if err := afero.WriteFile(d.fs, path, content, 0o644); err != nil {
			outcome.Err = fmt.Errorf("failed to write %s: %w", path, err)
			outcome.Cause = CauseIO
			break
		}

		outcome.Files++
	}

	if outcome.Failed() {
		d.logger.Error().
			Err(outcome.Err).
			Str("gist_id", gist.ID).
			Str("cause", string(outcome.Cause)).
			Msg("Failed to download gist")
	} else {
		d.logger.Info().
			Str("gist_id", gist.ID).
			Int("files", outcome.Files).
			Msg("Downloaded gist")
	}

	return outcome
}

// TargetDir returns the directory a gist's files are written under.
func TargetDir(dest, gistID string) string {
	return filepath.Join(dest, gistID)
}

// TargetPath returns the local path for one file of a gist. Paths are
// unique per (gist ID, filename), so concurrent gists never write to the
// same path within a batch.
func TargetPath(dest, gistID, filename string) string {
	return filepath.Join(dest, gistID, filename)
}
