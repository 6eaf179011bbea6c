package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/launchindex/internal/store"
)

func newStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show file index statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runStats(cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fileStore, err := store.OpenFileStore(cfg.FilesDBPath())
	if err != nil {
		return fmt.Errorf("failed to open file index: %w", err)
	}
	defer func() { _ = fileStore.Close() }()

	stats, err := fileStore.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Indexed files: %d\n", stats.TotalFiles)
	fmt.Fprintf(w, "Total size:    %s\n", humanSize(stats.TotalSize))
	fmt.Fprintf(w, "Database:      %s\n", cfg.FilesDBPath())
	return nil
}

// humanSize formats a byte count for display.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
