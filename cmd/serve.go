package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emoji-panel/api"
	"emoji-panel/clipboard"
	"emoji-panel/logger"
	"emoji-panel/panel"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the panel (default command)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("close backend", zap.Error(err))
		}
	}()
	if !store.Persistent() {
		log.Warn("no persistent backend configured; recent list will reset on restart")
	}

	var clip clipboard.Writer = clipboard.Noop{}
	if cfg.Clipboard.Enabled {
		clip = &clipboard.System{}
	}

	manager := panel.NewManager(store, clip, log)
	if staticFS == nil {
		return errors.New("static files not configured")
	}
	router := api.RegisterRoutes(manager, log, staticFS)

	go manager.ReapIdle(ctx, cfg.Server.PanelIdleTimeout)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := newHTTPServer(addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("emoji-panel listening",
			zap.String("addr", addr),
			zap.String("backend", cfg.Storage.Backend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	manager.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
