// Package serve runs the HTTP interface
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/fattura-csv/cmd/root"
	"fjacquet/fattura-csv/internal/server"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload and export API over HTTP",
	Long: `Serve the invoice API: upload FatturaPA files, review the session rows,
remove a document or reset the session, and download the rows as CSV, TSV,
XLSX or clipboard text.

Example:
  fattura-csv serve --addr :8080`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&root.Addr, "addr", "", "Listen address (default server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, c.GetConfig().Server.Addr, c.NewRouter(), c.GetLogger())
}
