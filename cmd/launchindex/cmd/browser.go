package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/launchindex/internal/browser"
	"github.com/Aman-CERP/launchindex/internal/output"
	"github.com/Aman-CERP/launchindex/internal/store"
)

func newBrowserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browser",
		Short: "Manage the browser bookmark and history cache",
	}

	cmd.AddCommand(newBrowserRefreshCmd())
	cmd.AddCommand(newBrowserStatsCmd())
	return cmd
}

func newBrowserRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the cache from all enabled browsers",
		Long: `Expire stale cache entries, then re-read bookmarks and history from
every enabled browser. Browsers that are missing or locked are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowserRefresh(cmd)
		},
	}
}

func newBrowserStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cached bookmark and history counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowserStats(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runBrowserRefresh(cmd *cobra.Command) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	browserStore, err := store.OpenBrowserStore(cfg.BrowserDBPath())
	if err != nil {
		return fmt.Errorf("failed to open browser cache: %w", err)
	}
	defer func() { _ = browserStore.Close() }()

	reader := browser.NewReader(cfg.Browser, browserStore)
	n, err := reader.UpdateCache(cmd.Context())
	if err != nil {
		return err
	}

	out.Successf("Cached %d browser entr%s", n, pluralY(n))
	return nil
}

func runBrowserStats(cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	browserStore, err := store.OpenBrowserStore(cfg.BrowserDBPath())
	if err != nil {
		return fmt.Errorf("failed to open browser cache: %w", err)
	}
	defer func() { _ = browserStore.Close() }()

	stats, err := browserStore.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Bookmarks: %d\n", stats.Bookmarks)
	fmt.Fprintf(w, "History:   %d\n", stats.History)
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
