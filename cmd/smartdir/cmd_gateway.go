package main

import (
	"smartdir/internal/gateway"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var gatewayListen string

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Serve /api in front of the backend's /db router",
	Long: `Runs an HTTP gateway exposing the dashboard's /api/{socios,recomendaciones,
conversaciones,logs} surface. Requests are mapped onto the backend's
/db/{collection} routes and list envelopes are unwrapped.`,
	Args: cobra.NoArgs,
	RunE: runGateway,
}

func init() {
	gatewayCmd.Flags().StringVar(&gatewayListen, "listen", "", "Listen address (overrides config)")
}

func runGateway(cmd *cobra.Command, args []string) error {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := cfg.Gateway.Listen
	if gatewayListen != "" {
		addr = gatewayListen
	}
	g := gateway.New(cfg.Gateway.BackendURL,
		gateway.WithTimeout(cfg.GetGatewayTimeout()),
		gateway.WithLogger(logger))
	return g.Run(commandContext(cmd), addr)
}
