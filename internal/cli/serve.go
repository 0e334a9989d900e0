package cli

import (
	"resuscan/internal/server"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start an HTTP server exposing the analysis, rendering and version
endpoints under /api, plus /health and /stats.

Authentication is enabled when API keys or a JWT secret are configured.
TLS is enabled when server.tls.certFile and server.tls.keyFile are set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if host != "" {
				c.cfg.Server.Host = host
			}
			if port != "" {
				c.cfg.Server.Port = port
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			if err := c.enableObservability(); err != nil {
				return err
			}

			ctx := cmd.Context()
			analyzer, err := c.analyzer()
			if err != nil {
				return err
			}
			renderer, err := c.renderer(ctx)
			if err != nil {
				return err
			}
			st, err := c.versionStore(ctx)
			if err != nil {
				return err
			}

			deps := server.Deps{
				Analyzer: analyzer,
				Renderer: renderer,
				Store:    st,
				Models:   c.modelCheckers(),
			}
			srv := server.NewServer(c.cfg, server.ConfigFrom(c.cfg, Version), deps, c.om, c.logger)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config)")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (default from config)")
	return cmd
}
