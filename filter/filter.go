// Package filter evaluates expression-based filters against gists.
//
// Expressions use the expr language over a fixed gist environment, e.g.
//
//	Public && Files > 1
//	"go" in Languages
//	Description contains "dotfiles"
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/gistgrab/gistgrab/github"
)

// Env is the variable environment a filter expression is evaluated in,
// one instance per gist.
type Env struct {
	ID          string
	Description string
	Public      bool
	Files       int
	FileNames   []string
	Languages   []string
	TotalSize   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter is a compiled gist filter, safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and compiles a filter expression. The expression must
// evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(Env{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the original filter expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single gist.
func (f *Filter) Match(gist github.Gist) (bool, error) {
	result, err := expr.Run(f.program, envFor(gist))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter %q: %w", f.expression, err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not evaluate to a boolean", f.expression)
	}

	return matched, nil
}

// Apply returns the gists matching the filter, preserving input order.
// A nil filter matches everything.
func Apply(f *Filter, gists []github.Gist) ([]github.Gist, error) {
	if f == nil {
		return gists, nil
	}

	matched := make([]github.Gist, 0, len(gists))
	for _, gist := range gists {
		ok, err := f.Match(gist)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, gist)
		}
	}

	return matched, nil
}

// envFor builds the expression environment for one gist. Languages are
// lowercased so expressions match case-insensitively.
func envFor(gist github.Gist) Env {
	env := Env{
		ID:          gist.ID,
		Description: gist.Description,
		Public:      gist.Public,
		Files:       len(gist.Files),
		FileNames:   gist.SortedFileNames(),
		TotalSize:   gist.TotalSize(),
		CreatedAt:   gist.CreatedAt,
		UpdatedAt:   gist.UpdatedAt,
	}

	seen := make(map[string]bool)
	for _, name := range env.FileNames {
		lang := strings.ToLower(gist.Files[name].Language)
		if lang != "" && !seen[lang] {
			seen[lang] = true
			env.Languages = append(env.Languages, lang)
		}
	}

	return env
}
