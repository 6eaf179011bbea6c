package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/launchindex/internal/indexer"
	"github.com/Aman-CERP/launchindex/internal/output"
	"github.com/Aman-CERP/launchindex/internal/store"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index [paths...]",
		Short: "Index explicit files or directories now",
		Long: `One-shot synchronous indexing of the given files or directories,
bypassing the configured watch roots.

Examples:
  launchindex index ~/Documents
  launchindex index ./notes.txt ./projects`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args)
		},
	}
}

func runIndex(cmd *cobra.Command, paths []string) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fileStore, err := store.OpenFileStore(cfg.FilesDBPath())
	if err != nil {
		return fmt.Errorf("failed to open file index: %w", err)
	}
	defer func() { _ = fileStore.Close() }()

	idx, err := indexer.New(cfg, fileStore)
	if err != nil {
		return err
	}

	count, err := idx.IndexPaths(cmd.Context(), paths)
	if err != nil {
		return err
	}

	out.Successf("Indexed %d file(s)", count)
	return nil
}
