package downloader

import (
	"github.com/gistgrab/gistgrab/github"
)

// Cause classifies what made a gist download fail.
type Cause string

const (
	// CauseHTTP is a non-2xx response fetching a file.
	CauseHTTP Cause = "http"
	// CauseDecode is a malformed response body.
	CauseDecode Cause = "decode"
	// CauseTransport is a network-level fetch failure.
	CauseTransport Cause = "transport"
	// CauseIO is a local filesystem write failure.
	CauseIO Cause = "io"
)

// Outcome is the per-gist result of a download attempt. Err is nil on
// success; on failure it carries the first error encountered and Files
// counts the files written before it.
type Outcome struct {
	GistID string
	Files  int
	Err    error
	Cause  Cause
}

// Failed reports whether the gist download failed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Report aggregates the outcomes of one DownloadAll batch.
type Report struct {
	// Downloaded is the number of gists written in full.
	Downloaded int
	// FilesWritten is the total number of files written across
	// successful gists.
	FilesWritten int
	// Failed holds one outcome per gist that could not be fully
	// downloaded, in completion order.
	Failed []Outcome
}

// FailedIDs returns the IDs of all failed gists. Completion order across
// gists is not deterministic, so callers should treat this as a set.
func (r Report) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for _, o := range r.Failed {
		ids = append(ids, o.GistID)
	}
	return ids
}

// Total returns the number of gists in the batch.
func (r Report) Total() int {
	return r.Downloaded + len(r.Failed)
}

// ResultObserver receives each gist's outcome as it completes. It may be
// invoked from multiple goroutines concurrently.
type ResultObserver interface {
	OnGistResult(outcome Outcome)
}

// ResultObserverFunc adapts a function to the ResultObserver interface.
type ResultObserverFunc func(outcome Outcome)

// OnGistResult implements ResultObserver.
func (f ResultObserverFunc) OnGistResult(outcome Outcome) {
	f(outcome)
}

// classifyCause maps a fetch or write error to its Cause. Write errors
// never travel through *APIError, so anything unclassified from the
// filesystem side is reported by the caller as CauseIO directly.
func classifyCause(err error) Cause {
	apiErr, ok := github.AsAPIError(err)
	if !ok {
		return CauseTransport
	}
	switch apiErr.Kind {
	case github.KindHTTP:
		return CauseHTTP
	case github.KindDecode:
		return CauseDecode
	default:
		return CauseTransport
	}
}
