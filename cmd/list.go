package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"appdock/internal/appentry"
	"appdock/internal/presentation"
)

var listSource string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every discovered app",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "all",
		"catalog to list: shortcuts, packaged or all")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()

	var (
		entries []appentry.Entry
		err     error
	)
	switch listSource {
	case "all":
		entries, err = e.engine.All(cmd.Context())
	case "shortcuts":
		entries, err = e.shortcuts.Entries(cmd.Context())
	case "packaged":
		entries, err = e.packaged.Entries(cmd.Context())
	default:
		return fmt.Errorf("unknown source %q, want shortcuts, packaged or all", listSource)
	}
	if err != nil {
		return fmt.Errorf("listing apps: %w", err)
	}

	if listSource != "all" {
		// Single-catalog listings skip the engine and its sorting.
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].DefaultName()) < strings.ToLower(entries[j].DefaultName())
		})
	}

	formatter := presentation.NewFormatter(os.Stdout, jsonOut)
	return formatter.FormatEntries(presentation.FromEntries(entries))
}
