package downloader

import "errors"

// ErrInvalidConcurrency is returned by DownloadAll when the requested
// concurrency is below 1. The check runs before any work starts, so no
// files are touched.
var ErrInvalidConcurrency = errors.New("downloader: concurrency must be at least 1")
