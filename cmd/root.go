package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"appdock/internal/appentry"
	"appdock/internal/async"
	"appdock/internal/catalog"
	"appdock/internal/config"
	"appdock/internal/log"
	"appdock/internal/paths"
	"appdock/internal/platform"
	"appdock/internal/search"
	"appdock/internal/store"
)

var (
	version  = "dev"
	cfgFile  string
	debug    bool
	jsonOut  bool
	cfg      config.Config
	closeLog func()
)

var rootCmd = &cobra.Command{
	Use:     "appdock",
	Short:   "Discover, search and launch installed applications",
	Long:    `appdock scans the start-menu shortcuts and the packaged app repository, keeps the results cached behind change watchers, and lets you search, launch and group the apps it finds.`,
	Version: version,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: <user config dir>/appdock/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to the data directory")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"emit JSON instead of columns")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("shortcut_dirs", defaults.ShortcutDirs)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("watch_debounce", defaults.WatchDebounce)
	viper.SetDefault("icon.size", defaults.Icon.Size)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(filepath.Dir(paths.ConfigFile()))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file anywhere: create the default and carry on.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := paths.ConfigFile()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func initLogging() {
	if !debug && os.Getenv("APPDOCK_DEBUG") == "" {
		return
	}
	logPath := filepath.Join(cfg.DataDir, "appdock.log")
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return
	}
	closeLog = cleanup
}

// configPath returns the config file in use, for commands that write
// sections back.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

// env wires the runtime, catalogs, search engine and group store for
// one command invocation.
type env struct {
	rt        *appentry.Runtime
	shortcuts *catalog.ShortcutCatalog
	packaged  *catalog.PackagedCatalog
	engine    *search.Engine
	groups    *store.GroupStore

	dispatcher *async.Serial
}

func newEnv() *env {
	dispatcher := async.NewSerial()
	rt := appentry.NewRuntime(dispatcher)
	rt.IconSize = cfg.Icon.Size

	e := &env{
		rt:         rt,
		shortcuts:  catalog.NewShortcutCatalog(rt, platform.LnkReader{}, cfg.ShortcutDirs),
		packaged:   catalog.NewPackagedCatalog(rt),
		dispatcher: dispatcher,
	}
	e.shortcuts.Debounce = cfg.WatchDebounce
	e.engine = search.NewEngine(e.shortcuts, e.packaged)
	e.groups = store.New(rt, cfg.DataDir)
	e.groups.Load()
	return e
}

func (e *env) close() {
	e.shortcuts.Close()
	e.packaged.Close()
	e.dispatcher.Close()
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if closeLog != nil {
		closeLog()
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
