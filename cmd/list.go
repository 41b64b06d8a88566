package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gistgrab/gistgrab/filter"
	"github.com/gistgrab/gistgrab/github"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List gists for a user",
	Long:  `List the gists of a GitHub user, up to the configured limit.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&username, "username", "u", "", "GitHub username (required)")
	listCmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of gists (-1 for all, 0 uses config default)")
	listCmd.Flags().IntVar(&pageSize, "page-size", 0, "gists per API page (0 uses config default)")
	listCmd.Flags().StringVar(&filterExpr, "filter", "", "filter expression, e.g. 'Public && Files > 1'")
	listCmd.MarkFlagRequired("username")
}

func runList(cmd *cobra.Command, args []string) error {
	gists, err := fetchGists(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	if len(gists) == 0 {
		fmt.Println("No gists found.")
		return nil
	}

	fmt.Printf("\nFound %d gists:\n", len(gists))
	fmt.Println(strings.Repeat("-", 80))

	for _, gist := range gists {
		fmt.Printf("• %s\n", gist.Summary())
		fmt.Printf("  Files: %d (%d bytes)  Created: %s\n",
			len(gist.Files), gist.TotalSize(), gist.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

// fetchGists lists gists according to the shared flags and applies the
// optional filter expression. Used by both list and download.
func fetchGists(ctx context.Context, cmd *cobra.Command) ([]github.Gist, error) {
	// Compile the filter before touching the network so a bad
	// expression fails fast.
	var gistFilter *filter.Filter
	if filterExpr != "" {
		var err error
		gistFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return nil, err
		}
	}

	effectiveLimit := cfg.Download.Limit
	if cmd.Flags().Changed("limit") {
		effectiveLimit = limit
	}

	effectivePageSize := cfg.GitHub.PageSize
	if cmd.Flags().Changed("page-size") {
		effectivePageSize = pageSize
	}

	logger.Info().
		Str("username", username).
		Int("limit", effectiveLimit).
		Msg("Listing gists")

	gists, err := githubClient.ListGists(ctx, username, effectiveLimit, effectivePageSize)
	if err != nil {
		return nil, err
	}

	return filter.Apply(gistFilter, gists)
}
