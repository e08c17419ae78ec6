package main

import (
	"fmt"
	"os"

	"fjacquet/fattura-csv/cmd/batch"
	"fjacquet/fattura-csv/cmd/convert"
	"fjacquet/fattura-csv/cmd/root"
	"fjacquet/fattura-csv/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
