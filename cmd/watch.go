package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the app sources and report catalog rebuilds",
	Long:  `Watch installs the shortcut directory and package repository watchers, then prints an event line every time a catalog is invalidated or rebuilt. Useful for checking that change detection works on a machine.`,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !cfg.AutoRefresh {
		return fmt.Errorf("auto_refresh is disabled in the config")
	}

	e := newEnv()
	defer e.close()

	ctx := cmd.Context()
	e.shortcuts.StartWatching()
	e.packaged.StartWatching()

	// Prime both catalogs so invalidations have something to rebuild.
	if _, err := e.engine.All(ctx); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	shortcutEvents := e.shortcuts.Events().Subscribe(ctx)
	packagedEvents := e.packaged.Events().Subscribe(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintln(os.Stdout, "watching, ctrl-c to stop")
	for {
		select {
		case ev, ok := <-shortcutEvents:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stdout, "%s %s\n", ev.Payload, ev.Type)
		case ev, ok := <-packagedEvents:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stdout, "%s %s\n", ev.Payload, ev.Type)
		case <-stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
