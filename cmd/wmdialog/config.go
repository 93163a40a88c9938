package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wmdialog/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	// Skips loading the config so a broken file can be replaced.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write a config file holding the default values, ready for editing.
An existing file is left untouched unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

var configInitOpts struct {
	force bool
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false, "Overwrite an existing config file")
}

// configFilePath returns --config when given, otherwise the default path.
func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if _, err := os.Stat(path); err == nil && !configInitOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
