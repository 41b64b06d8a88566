package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gistgrab/gistgrab/downloader"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download gists for a user",
	Long: `Download the gists of a GitHub user to a local folder, one
subdirectory per gist, fetching multiple gists concurrently.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&username, "username", "u", "", "GitHub username (required)")
	downloadCmd.Flags().StringVarP(&folder, "folder", "f", "", "directory to save gists (default from config)")
	downloadCmd.Flags().IntVarP(&concurrent, "concurrent", "c", 0, "number of concurrent gist downloads (0 uses config default)")
	downloadCmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of gists (-1 for all, 0 uses config default)")
	downloadCmd.Flags().IntVar(&pageSize, "page-size", 0, "gists per API page (0 uses config default)")
	downloadCmd.Flags().StringVar(&filterExpr, "filter", "", "filter expression, e.g. 'Public && Files > 1'")
	downloadCmd.MarkFlagRequired("username")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gists, err := fetchGists(ctx, cmd)
	if err != nil {
		return err
	}

	if len(gists) == 0 {
		fmt.Println("No gists to download.")
		return nil
	}

	destination := cfg.Download.Folder
	if cmd.Flags().Changed("folder") {
		destination = folder
	}

	concurrency := cfg.Download.Concurrency
	if cmd.Flags().Changed("concurrent") {
		concurrency = concurrent
	}

	logger.Info().
		Int("gists", len(gists)).
		Int("concurrency", concurrency).
		Str("destination", destination).
		Msg("Starting downloads")

	dl := downloader.New(githubClient, logger)
	report, err := dl.DownloadAll(ctx, gists, concurrency, destination)
	if err != nil {
		return err
	}

	absDest, err := filepath.Abs(destination)
	if err != nil {
		absDest = destination
	}

	fmt.Printf("\nDownloaded %d of %d gists (%d files) to %s\n",
		report.Downloaded, report.Total(), report.FilesWritten, absDest)

	// Per-gist failures are reported, not fatal; only listing or
	// configuration errors change the exit status.
	if len(report.Failed) > 0 {
		fmt.Printf("Failed gists (%d): %s\n",
			len(report.Failed), strings.Join(report.FailedIDs(), ", "))
	}

	return nil
}
