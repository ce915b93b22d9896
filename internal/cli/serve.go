package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rocketgeek/akismetclient-go/client"
	"github.com/rocketgeek/akismetclient-go/internal/metrics"
	"github.com/rocketgeek/akismetclient-go/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration validation chain over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := metrics.NewPrometheusMetrics()
			s, err := a.open(cmd, client.WithMetrics(m))
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(s.client, server.WithLogger(s.logger), server.WithMetrics(m))
			s.logger.Info("validation chain", "hooks", srv.Tags())
			return server.Run(ctx, addr, srv.Router(), s.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", getenvDefault("AKISMET_ADDR", "127.0.0.1:8080"), "Listen address")
	return cmd
}
