package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"appdock/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the directories scanned for shortcuts",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the shortcut scan directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, dir := range cfg.ShortcutDirs {
			fmt.Fprintln(os.Stdout, dir)
		}
		return nil
	},
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <dir>",
	Short: "Add a shortcut scan directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if slices.Contains(cfg.ShortcutDirs, dir) {
			return nil
		}
		dirs := append(cfg.ShortcutDirs, dir)
		if err := config.SaveShortcutDirs(configPath(), dirs); err != nil {
			return fmt.Errorf("adding source: %w", err)
		}
		return nil
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <dir>",
	Short: "Remove a shortcut scan directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		idx := slices.Index(cfg.ShortcutDirs, dir)
		if idx < 0 {
			return fmt.Errorf("%q is not a configured source", dir)
		}
		dirs := slices.Delete(slices.Clone(cfg.ShortcutDirs), idx, idx+1)
		if err := config.SaveShortcutDirs(configPath(), dirs); err != nil {
			return fmt.Errorf("removing source: %w", err)
		}
		return nil
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	rootCmd.AddCommand(sourcesCmd)
}
