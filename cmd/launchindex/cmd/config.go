package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/launchindex/configs"
	"github.com/Aman-CERP/launchindex/internal/config"
	"github.com/Aman-CERP/launchindex/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the launchindex configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an annotated default config file",
		Long: `Write the annotated default configuration to the data directory.
Refuses to overwrite an existing config unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying defaults, the config file,
and environment overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.NewConfig()
	if _, err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(configs.ExampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out.Successf("Wrote %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
