package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/launchindex/internal/browser"
	"github.com/Aman-CERP/launchindex/internal/indexer"
	"github.com/Aman-CERP/launchindex/internal/logging"
	"github.com/Aman-CERP/launchindex/internal/output"
	"github.com/Aman-CERP/launchindex/internal/preflight"
	"github.com/Aman-CERP/launchindex/internal/store"
)

func newDaemonCmd() *cobra.Command {
	var refreshInterval time.Duration
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the background indexer and browser cache refresher",
		Long: `Run launchindex in the foreground: the file indexer scans and watches
the configured roots while the browser cache refreshes on a timer.

Stops cleanly on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), cmd, refreshInterval, skipCheck)
		},
	}

	cmd.Flags().DurationVar(&refreshInterval, "browser-refresh", 5*time.Minute,
		"Interval between browser cache refreshes")
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Skip pre-flight system checks")
	return cmd
}

func runDaemon(ctx context.Context, cmd *cobra.Command, refreshInterval time.Duration, skipCheck bool) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Indexer.Paths) == 0 {
		out.Warning("no indexer paths configured; only browser cache will refresh")
	}

	if !skipCheck && preflight.NeedsCheck(cfg.DataDir) {
		checker := preflight.New(preflight.WithOutput(cmd.OutOrStdout()))
		results := checker.RunAll(ctx, cfg.DataDir)
		if checker.HasCriticalFailures(results) {
			checker.PrintResults(results)
			return fmt.Errorf("system check failed")
		}
		if err := preflight.MarkPassed(cfg.DataDir); err != nil {
			slog.Debug("failed to record preflight marker", slog.String("error", err.Error()))
		}
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

	idx, err := indexer.New(cfg, fileStore)
	if err != nil {
		return err
	}
	if err := idx.Start(ctx); err != nil {
		return err
	}
	defer idx.Stop()

	reader := browser.NewReader(cfg.Browser, browserStore)

	out.Statusf("", "Indexing %d root(s); logs: %s", len(cfg.Indexer.Paths), logging.DefaultLogPath())
	out.Status("", "Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Drain progress so slow consumers never stall the scanner.
	go func() {
		for p := range idx.Progress() {
			slog.Debug("scan_progress",
				slog.Int("current", p.Current),
				slog.String("path", p.Path),
				slog.String("stage", p.Stage))
		}
	}()

	refresh := func() {
		n, err := reader.UpdateCache(ctx)
		if err != nil {
			slog.Error("browser cache refresh failed", slog.String("error", err.Error()))
			return
		}
		slog.Info("browser cache refreshed", slog.Int("entries", n))
	}
	refresh()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			out.Newline()
			out.Status("", "Shutting down...")
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}
