// Package batch handles batch processing of files
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"fjacquet/fattura-csv/cmd/common"
	"fjacquet/fattura-csv/cmd/root"
	"fjacquet/fattura-csv/internal/fileutils"
	"fjacquet/fattura-csv/internal/logging"
	"fjacquet/fattura-csv/internal/models"
	"fjacquet/fattura-csv/internal/parsererror"
	"fjacquet/fattura-csv/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process FatturaPA files from a directory",
	Long: `Batch process every .xml file of an input directory into one combined output.

Documents are processed in parallel. A file that cannot be read or parsed does
not stop the others: the rows of every valid document are written, then the
failing files are listed and the command exits with an error.

Example:
  fattura-csv batch -i fatture/ -o fatture.xlsx --workers 8`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&root.SharedFlags.Format, "format", "", "Output format: csv, tsv or xlsx")
	Cmd.Flags().IntVar(&root.Workers, "workers", 0, "Documents processed in parallel (default batch.workers)")
	Cmd.Flags().StringVar(&reportFile, "report", "", "Write a JSON or XML summary of the run to this file")
}

var reportFile string

func batchFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	inputDir, output := root.SharedFlags.Input, root.SharedFlags.Output
	if inputDir == "" {
		return fmt.Errorf("an input directory must be specified with -i")
	}

	format, err := common.ResolveFormat(root.SharedFlags.Format, output, c.DefaultFormat())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt)
	defer stop()

	rows, procErr := common.ProcessDirectory(ctx, c.GetProcessor(), inputDir, logger)
	var batchErr *parsererror.BatchError
	if procErr != nil && !errors.As(procErr, &batchErr) {
		return procErr
	}

	if len(rows) > 0 {
		if err := common.WriteRows(cmd.OutOrStdout(), c.GetExporter(), rows, output, format); err != nil {
			return err
		}
	}

	if reportFile != "" {
		if err := writeReport(reportFile, rows, procErr, logger); err != nil {
			return err
		}
	}

	logger.Info("Batch completed",
		logging.F(logging.FieldInputFile, inputDir),
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(rows)))

	return procErr
}

func writeReport(path string, rows []models.Row, procErr error, logger logging.Logger) error {
	format := "json"
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		format = "xml"
	}
	data, err := report.NewGenerator(logger).Generate(report.Summarize(rows, procErr), format)
	if err != nil {
		return err
	}
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", logging.F(logging.FieldOutputFile, path))
	return nil
}

// contextOrBackground keeps commands runnable outside Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
