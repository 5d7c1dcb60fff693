package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API backing interactive dashboards.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve charts, rankings, and filters over HTTP.",
	Long: `Serve the loaded records over a JSON HTTP API.

The server keeps one shared session: chart filters set through the API
scope every subsequent chart and ranking response, the same way chart
clicks scope a dashboard. Shuts down cleanly on SIGINT or SIGTERM.

Endpoints:
- GET  /api/charts         full chart catalog over the filtered records
- GET  /api/charts/{id}    one chart by identifier
- GET  /api/rank           ranked High Risk members
- GET  /api/summary        dataset-wide counts
- GET  /api/filters        current filter state
- POST /api/filters        set a chart filter from a clicked element
- DELETE /api/filters      clear every chart filter
- DELETE /api/filters/{id} remove one chart's filter
- POST /api/search         set search text and dropdown selections
- POST /api/resolve/{id}   identify the chart element at a canvas position

Examples:
  # Serve a JSON export on the default port
  riskboard serve --data-file records.json

  # Serve the stored records on a custom address
  riskboard serve --addr :9000`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := httpapi.NewServer(session, cfg)
		if err := server.Run(ctx); err != nil {
			contract.LogFatal("Cannot run HTTP server", err)
		}
	},
}
