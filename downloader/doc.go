// Package downloader materializes gists to local storage.
//
// DownloadAll runs a fixed pool of workers fed from a channel; the pool
// size is the concurrency bound, so at most that many gists are in flight
// at once while files within a single gist are always fetched
// sequentially. Failures are isolated per gist and summarized in a Report
// rather than aborting the batch.
package downloader
