package github

import (
	"context"
)

// Lister enumerates a user's gists page by page.
type Lister interface {
	// ListGists retrieves up to limit gists for username. A limit <= 0
	// means no limit; pageSize <= 0 uses the API maximum.
	ListGists(ctx context.Context, username string, limit, pageSize int) ([]Gist, error)
}

// RawFetcher retrieves the raw bytes of a single gist file.
type RawFetcher interface {
	FetchRaw(ctx context.Context, rawURL string) ([]byte, error)
}

// PageObserver receives telemetry after each listing page is fetched.
// Implementations must be safe for reuse across calls; ListGists invokes
// the observer from the calling goroutine only.
type PageObserver interface {
	OnPageFetched(page, count int, rl RateLimit)
}

// PageObserverFunc adapts a function to the PageObserver interface.
type PageObserverFunc func(page, count int, rl RateLimit)

// OnPageFetched implements PageObserver.
func (f PageObserverFunc) OnPageFetched(page, count int, rl RateLimit) {
	f(page, count, rl)
}
