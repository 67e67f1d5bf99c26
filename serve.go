package main

import (
	"net"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"ai_content_generator/config"
	"ai_content_generator/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and web form",
	Long: `Start the HTTP server.

The server provides:
  - GET  /              - web form
  - GET  /api/health    - server health check
  - GET  /api/info      - API information
  - POST /api/generate  - generate content
  - GET  /api/history   - generation history
  - GET  /api/stats     - server statistics
  - GET  /metrics       - Prometheus metrics

Provider credentials in the config file are hot-reloaded.

Examples:
  ai-content-generator serve                 # listen on $PORT or 3000
  ai-content-generator serve --port 8080
  ai-content-generator serve --host 127.0.0.1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		cfg := a.cfg.Get()
		if cfg.LogMode == "prod" || cfg.LogMode == "production" {
			gin.SetMode(gin.ReleaseMode)
		}
		a.cfg.OnChange(func(c *config.Config) {
			a.agent.SetLLM(c.SelectLLM())
			a.log.Info("provider selection reloaded from config", "ai_provider", a.agent.Provider())
		})
		a.cfg.WatchConfig()

		srv, err := server.New(server.Config{
			Agent:       a.agent,
			History:     a.store,
			Metrics:     a.metrics,
			Logger:      a.log,
			CORSOrigins: cfg.Origins(),
			Version:     version,
		})
		if err != nil {
			return err
		}

		host, port := cfg.Host, cfg.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		addr := net.JoinHostPort(host, port)

		a.log.Info("AI Content Generator backend starting",
			"addr", addr,
			"version", version,
			"history_limit", a.store.Limit(),
			"config_file", a.cfg.ConfigFile(),
		)
		for name, ep := range server.Endpoints {
			a.log.Debug("endpoint", "name", name, "route", ep)
		}
		a.logProvider()

		return srv.Run(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to bind to (overrides HOST)")
	serveCmd.Flags().StringVar(&servePort, "port", "3000", "Port to listen on (overrides PORT)")

	rootCmd.AddCommand(serveCmd)
}
