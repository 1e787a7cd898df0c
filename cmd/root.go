package cmd

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"emoji-panel/config"
	"emoji-panel/kv"
	"emoji-panel/recent"
)

var (
	cfgFile  string
	logLevel string
	staticFS fs.FS
)

var rootCmd = &cobra.Command{
	Use:   "emoji-panel",
	Short: "Emoji palette panel with a persistent recently-used list",
	Long: `emoji-panel serves a small emoji palette in the browser. Picking a symbol
copies it to the clipboard and moves it to the front of a recently-used list
that is kept across restarts when a persistent backend is configured.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/emoji-panel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recentCmd)
}

// SetStaticFS sets the filesystem the page and its assets are served from.
func SetStaticFS(fsys fs.FS) {
	staticFS = fsys
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("error loading config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// openStore opens the configured backend and wraps it in a recent.Store.
// The returned close function releases the backend.
func openStore(ctx context.Context, cfg config.Config) (*recent.Store, func() error, error) {
	backend, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s backend: %w", cfg.Storage.Backend, err)
	}
	closeFn := func() error { return nil }
	if backend != nil {
		closeFn = backend.Close
	}
	return recent.NewStore(backend, recent.WithKey(cfg.Storage.Key)), closeFn, nil
}
