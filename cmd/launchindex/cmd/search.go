package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/launchindex/internal/search"
	"github.com/Aman-CERP/launchindex/internal/store"
)

func newSearchCmd() *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the file index and browser cache",
		Long: `Unified search across the file index and the cached browser data.
Results are merged and ranked; higher scores come first.

Examples:
  launchindex search report
  launchindex search "golang docs" --limit 5 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), limit, jsonOutput)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fileStore, err := store.OpenFileStore(cfg.FilesDBPath())
	if err != nil {
		return fmt.Errorf("failed to open file index: %w", err)
	}
	defer func() { _ = fileStore.Close() }()

	browserStore, err := store.OpenBrowserStore(cfg.BrowserDBPath())
	if err != nil {
		return fmt.Errorf("failed to open browser cache: %w", err)
	}
	defer func() { _ = browserStore.Close() }()

	facade := search.NewFacade(fileStore, browserStore, nil)
	resp, err := facade.Search(cmd.Context(), query, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	w := cmd.OutOrStdout()
	if resp.Total == 0 {
		fmt.Fprintf(w, "No results for %q\n", query)
		return nil
	}

	for _, r := range resp.Results {
		fmt.Fprintf(w, "%-8s %.2f  %s\n", r.Type, r.Score, r.Title)
		fmt.Fprintf(w, "         %s\n", r.Subtitle)
	}
	fmt.Fprintf(w, "\n%d result(s) in %dms\n", resp.Total, resp.QueryTime)
	return nil
}
