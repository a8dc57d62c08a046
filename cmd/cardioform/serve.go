package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/internal/server"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the intake form and the classification API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			gen, err := a.orchestrator()
			if err != nil {
				return err
			}
			srv, err := server.New(gen,
				server.WithLogger(a.logger),
				server.WithAssets(a.cfg.Server.AssetPrefix, vanilla.AssetsFS()),
				server.WithOpenAPIDocument(form.OpenAPIDocument()),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Debug("starting server",
				zap.String("theme", a.cfg.Theme.Name),
				zap.String("variant", a.cfg.Theme.Variant),
				zap.Strings("renderers", gen.Registry().List()),
			)
			return server.Run(ctx, server.RunConfig{
				Addr:              a.cfg.Server.Addr,
				ShutdownGrace:     a.cfg.Server.ShutdownGrace,
				ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
			}, srv.Handler(), a.logger, nil)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}
