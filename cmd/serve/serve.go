// Package serve runs the HTTP API server.
package serve

import (
	"github.com/spf13/cobra"

	"statement-ledger/cmd/root"
	"statement-ledger/internal/api"
	"statement-ledger/internal/extractor"
)

var listen string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion pipeline over HTTP",
	Long: `Serve starts an HTTP server exposing statement conversion and rule
management endpoints under /api.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	addr := listen
	if addr == "" {
		addr = root.Cfg.Server.Listen
	}

	server := api.NewServer(extractor.Auto{}, root.Categorizer, root.SharedFlags.Account)
	return server.Listen(addr)
}
