package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpserver "github.com/Clark-Hu/moviedash/internal/http"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset and rating ledger over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			st, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := httpserver.New(*cfg, st, logger)

			serverErrCh := make(chan error, 1)
			go func() {
				if err := server.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					serverErrCh <- err
					return
				}
				serverErrCh <- nil
			}()

			var serveErr error
			select {
			case err := <-serverErrCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr = err
				}
			case <-runCtx.Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("graceful shutdown error: %v", err)
			}
			return serveErr
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}
