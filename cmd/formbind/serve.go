package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forms over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			orch, err := server.NewOrchestrator(cfg, a.logger)
			if err != nil {
				return err
			}
			srv, err := server.New(cfg, orch, a.logger)
			if err != nil {
				return err
			}

			errs := make(chan error, 1)
			go func() { errs <- srv.Start() }()

			select {
			case err := <-errs:
				return err
			case <-cmd.Context().Done():
			}

			a.logger.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return <-errs
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FORMBIND_ADDR)")
	return cmd
}
