package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"appdock/internal/presentation"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search apps by name",
	Long:  `Search matches substrings first. When nothing contains the query, fuzzy matching on initialisms and similarity takes over, so "vsc" still finds Visual Studio Code.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()

	query := strings.Join(args, " ")
	entries, err := e.engine.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("searching %q: %w", query, err)
	}

	formatter := presentation.NewFormatter(os.Stdout, jsonOut)
	return formatter.FormatEntries(presentation.FromEntries(entries))
}
