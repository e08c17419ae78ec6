// Package convert handles single document conversion
package convert

import (
	"fmt"

	"fjacquet/fattura-csv/cmd/common"
	"fjacquet/fattura-csv/cmd/root"
	"fjacquet/fattura-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one FatturaPA document",
	Long: `Convert one FatturaPA XML document into reconciled rows.

A document with several installments produces one row per installment; a file
with several bodies produces one document per body. The output format follows
--format, else the output extension, else export.format.

Example:
  fattura-csv convert -i IT01234567890_00001.xml -o fatture.xlsx`,
	RunE: convertFunc,
}

func init() {
	Cmd.Flags().StringVar(&root.SharedFlags.Format, "format", "", "Output format: csv, tsv or xlsx")
}

func convertFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	input, output := root.SharedFlags.Input, root.SharedFlags.Output
	if input == "" {
		return fmt.Errorf("an input file must be specified with -i")
	}

	format, err := common.ResolveFormat(root.SharedFlags.Format, output, c.DefaultFormat())
	if err != nil {
		return err
	}

	rows, err := common.ConvertFile(c.GetProcessor(), input)
	if err != nil {
		return err
	}

	if err := common.WriteRows(cmd.OutOrStdout(), c.GetExporter(), rows, output, format); err != nil {
		return err
	}

	logger.Info("Conversion completed",
		logging.F(logging.FieldInputFile, input),
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}
