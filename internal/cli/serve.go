package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenetree/internal/server"
	"github.com/matzehuels/scenetree/pkg/observability"
)

// serveCommand creates the serve command, which publishes the outline of a
// document over HTTP together with Prometheus metrics.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the scene graph outline over HTTP",
		Long: `Serve the scene graph outline of a glTF document over HTTP.

Routes:
  GET  /                      text outline
  GET  /api/rows              flattened rows as JSON
  GET  /api/stats             document statistics as JSON
  GET  /api/export/{format}   outline in any export format
  POST /api/reload            re-import the document from disk
  GET  /healthz               liveness
  GET  /metrics               Prometheus metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd, args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, path, addr string) error {
	ctx := cmd.Context()

	metrics := server.NewMetrics(prometheus.DefaultRegisterer)
	observability.SetPipelineHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetHTTPHooks(metrics)
	defer observability.Reset()

	srv, err := server.New(ctx, c.Logger, path, server.Options{
		Style:          c.Config.Outline.Style,
		RootConnectors: c.Config.Outline.RootConnectors,
	})
	if err != nil {
		return fmt.Errorf("serve %s: %w", path, err)
	}

	printInfo(cmd.OutOrStdout(), "Listening on http://%s", addr)
	return srv.ListenAndServe(ctx, addr)
}
