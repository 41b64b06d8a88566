package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gistgrab/gistgrab/github"
)

func sampleGists() []github.Gist {
	return []github.Gist{
		{
			ID:          "dotfiles",
			Description: "my dotfiles collection",
			Public:      true,
			CreatedAt:   time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			Files: map[string]github.GistFile{
				".vimrc":  {Filename: ".vimrc", Language: "VimL", Size: 1200},
				".bashrc": {Filename: ".bashrc", Language: "Shell", Size: 800},
			},
		},
		{
			ID:          "secret",
			Description: "scratch notes",
			Public:      false,
			CreatedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Files: map[string]github.GistFile{
				"notes.md": {Filename: "notes.md", Language: "Markdown", Size: 300},
			},
		},
		{
			ID:          "snippets",
			Description: "go snippets",
			Public:      true,
			CreatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Files: map[string]github.GistFile{
				"main.go": {Filename: "main.go", Language: "Go", Size: 2048},
			},
		},
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{name: "empty", expression: ""},
		{name: "whitespace only", expression: "   "},
		{name: "syntax error", expression: "Public &&"},
		{name: "not a boolean", expression: "Description"},
		{name: "unknown variable", expression: "Watched"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			assert.Error(t, err)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantIDs    []string
	}{
		{
			name:       "public only",
			expression: "Public",
			wantIDs:    []string{"dotfiles", "snippets"},
		},
		{
			name:       "multiple files",
			expression: "Files > 1",
			wantIDs:    []string{"dotfiles"},
		},
		{
			name:       "by language",
			expression: `"go" in Languages`,
			wantIDs:    []string{"snippets"},
		},
		{
			name:       "description contains",
			expression: `Description contains "notes"`,
			wantIDs:    []string{"secret"},
		},
		{
			name:       "by file name",
			expression: `".vimrc" in FileNames`,
			wantIDs:    []string{"dotfiles"},
		},
		{
			name:       "size threshold",
			expression: "TotalSize >= 2000",
			wantIDs:    []string{"dotfiles", "snippets"},
		},
		{
			name:       "created after",
			expression: `CreatedAt > date("2024-01-01")`,
			wantIDs:    []string{"secret", "snippets"},
		},
		{
			name:       "no match",
			expression: `ID == "nope"`,
			wantIDs:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := Apply(f, sampleGists())
			require.NoError(t, err)

			ids := make([]string, 0, len(matched))
			for _, g := range matched {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApplyNilFilter(t *testing.T) {
	gists := sampleGists()

	matched, err := Apply(nil, gists)
	require.NoError(t, err)
	assert.Equal(t, gists, matched)
}

func TestExpressionPreserved(t *testing.T) {
	f, err := Compile("  Public  ")
	require.NoError(t, err)
	assert.Equal(t, "Public", f.Expression())
}
