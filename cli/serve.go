package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/server"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := build(cmd, opts)
			if err != nil {
				return err
			}
			defer d.log.Sync()

			srv := server.New(d.cfg, d.relay, d.metrics, d.log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			d.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				d.log.Error("shutdown failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("listen", "", "listen address, overrides listen_address")
	return cmd
}
