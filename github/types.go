package github

import (
	"sort"
	"strings"
	"time"
)

// Gist represents one gist as returned by the listing endpoint. Only the
// fields this tool acts on are decoded; the API returns many more.
type Gist struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	HTMLURL     string              `json:"html_url"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Files       map[string]GistFile `json:"files"`
	Owner       Owner               `json:"owner"`
}

// GistFile describes a single file within a gist.
type GistFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Language string `json:"language"`
	RawURL   string `json:"raw_url"`
	Size     int64  `json:"size"`
}

// Owner identifies the account that owns a gist.
type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// SortedFileNames returns the gist's file names in lexical order.
// The API delivers files as a JSON object, so there is no wire order to
// preserve; sorting pins a deterministic processing order per gist.
func (g *Gist) SortedFileNames() []string {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalSize returns the combined size in bytes of all files in the gist.
func (g *Gist) TotalSize() int64 {
	var total int64
	for _, f := range g.Files {
		total += f.Size
	}
	return total
}

// Summary returns a one-line description of the gist for display.
func (g *Gist) Summary() string {
	desc := g.Description
	if desc == "" {
		desc = "<no description>"
	}
	return g.ID + " - " + desc + " (" + strings.Join(g.SortedFileNames(), ", ") + ")"
}

// RateLimit holds the rate-limit fields parsed from a listing response.
// Either field is nil when the corresponding header is absent or unparsable.
type RateLimit struct {
	Limit     *int
	Remaining *int
}

// Exhausted reports whether the remaining-count header was present and zero.
func (rl RateLimit) Exhausted() bool {
	return rl.Remaining != nil && *rl.Remaining == 0
}
