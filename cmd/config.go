package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented default config file",
	Long: `Write the default configuration with every option documented.

Example:
  scribe config init                 # ~/.config/scribe/config.yaml
  scribe config init --project       # ./.scribe/config.yaml
  scribe config init ./my.yaml       # explicit path`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	RunE: func(cmd *cobra.Command, _ []string) error {
		used := viper.ConfigFileUsed()
		if used == "" {
			used = "(none, using defaults)"
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), used)
		return err
	},
}

var (
	configInitProject bool
	configInitForce   bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd)

	configInitCmd.Flags().BoolVar(&configInitProject, "project", false, "write ./.scribe/config.yaml instead of the user config")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	target, err := configInitTarget(args, configInitProject)
	if err != nil {
		return err
	}

	if _, err := os.Stat(target); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}
	if err := config.WriteDefaultConfig(target); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
	return err
}

func configInitTarget(args []string, project bool) (string, error) {
	switch {
	case len(args) == 1:
		return paths.ResolveFile(args[0])
	case project:
		return paths.ProjectConfig, nil
	}
	dir := paths.UserConfigDir()
	if dir == "" {
		return "", fmt.Errorf("cannot determine home directory; pass a path")
	}
	return filepath.Join(dir, "config.yaml"), nil
}
