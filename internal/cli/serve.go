package cli

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

	"feedsync/internal/app"
	"feedsync/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the optional refresh scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(os.Stdout)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer a.Close()

			sched := a.Scheduler()
			if sched != nil {
				sched.Start()
				defer sched.Stop()
			}

			router := a.Router()
			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", "module", "cli", "action", "serve", "resource", "http", "result", "ok", "addr", cfg.Addr, "store", cfg.Store)
				errCh <- router.Start(cfg.Addr)
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("start server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down", "module", "cli", "action", "serve", "resource", "http", "result", "ok")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := router.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
