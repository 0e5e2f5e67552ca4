package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"appdock/internal/appentry"
)

var launchAsAdmin bool

var launchCmd = &cobra.Command{
	Use:   "launch <name>",
	Short: "Launch an app by name",
	Long:  `Launch starts the app whose name matches the query. An exact name match wins; otherwise the single search result is launched, and an ambiguous query lists the candidates instead.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchAsAdmin, "admin", false,
		"launch with elevated rights")
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	e := newEnv()
	defer e.close()

	query := strings.Join(args, " ")
	entry, err := resolveOne(e, cmd, query)
	if err != nil {
		return err
	}

	if err := entry.Launch(cmd.Context(), launchAsAdmin); err != nil {
		return fmt.Errorf("launching %q: %w", entry.Name(), err)
	}
	return nil
}

// resolveOne picks the single entry a query denotes.
func resolveOne(e *env, cmd *cobra.Command, query string) (appentry.Entry, error) {
	matches, err := e.engine.Search(cmd.Context(), query)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no app matches %q", query)
	}

	for _, m := range matches {
		if strings.EqualFold(m.Name(), query) {
			return m, nil
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name())
	}
	return nil, fmt.Errorf("%q is ambiguous, candidates: %s", query, strings.Join(names, ", "))
}
