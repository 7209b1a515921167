package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tokenguard/internal/auth"
	"tokenguard/internal/logger"
	"tokenguard/internal/secret"
	"tokenguard/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server", "start"},
		Short:   "Start the HTTP API",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			key, err := secret.Resolve(ctx, c.cfg.Secret)
			if err != nil {
				return fmt.Errorf("failed to resolve JWT secret: %w", err)
			}

			router := server.NewRouter(server.Options{
				Verifier:           auth.NewJWTManager(key),
				CORSAllowedOrigins: c.cfg.CORSAllowedOrigins,
			})
			srv := server.NewHTTPServer(":"+c.cfg.Port, router)

			logger.Info("Starting server", "addr", srv.Addr, "secret_source", c.cfg.Secret.Source)
			return server.ListenAndServe(ctx, srv)
		},
	}
}
