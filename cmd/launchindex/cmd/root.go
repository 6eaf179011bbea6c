// Package cmd provides the CLI commands for launchindex.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/launchindex/internal/config"
	"github.com/Aman-CERP/launchindex/internal/logging"
	"github.com/Aman-CERP/launchindex/internal/profiling"
	"github.com/Aman-CERP/launchindex/pkg/version"
)

// Profiling flags
var (
	profileCPU   string
	profileMem   string
	profileTrace string
	profiler     = profiling.NewProfiler()
	cpuCleanup   func()
	traceCleanup func()
)

// Debug logging flag
var (
	debugMode      bool
	configPath     string
	loggingCleanup func()
)

// NewRootCmd creates the root command for the launchindex CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launchindex",
		Short: "Local file index and browser cache for instant launcher search",
		Long: `launchindex keeps a near-real-time index of your files and a cache of
browser bookmarks and history, and serves ranked unified search over both.

Run 'launchindex daemon' to start the background indexer, or use the
one-shot commands (index, search, browser, stats) directly.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	cmd.SetVersionTemplate("launchindex version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to the data directory")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: data dir config.yaml)")

	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newDaemonCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newBrowserCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startProfilingAndLogging installs the file logger and starts profiling
// before any command runs.
func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if debugMode {
		logCfg = logging.DebugConfig()
	}

	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup

	if debugMode {
		slog.Info("debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version))
	}

	if profileCPU != "" {
		cpuCleanup, err = profiler.StartCPU(profileCPU)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}

	if profileTrace != "" {
		traceCleanup, err = profiler.StartTrace(profileTrace)
		if err != nil {
			if cpuCleanup != nil {
				cpuCleanup()
			}
			return fmt.Errorf("failed to start trace: %w", err)
		}
	}

	return nil
}

// stopProfilingAndLogging stops profiling and logging, writing the memory
// profile if requested.
func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if cpuCleanup != nil {
		cpuCleanup()
		cpuCleanup = nil
	}

	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}

	if profileMem != "" {
		if err := profiler.WriteHeap(profileMem); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
	}

	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
