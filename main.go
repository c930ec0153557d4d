package main

import (
	"fmt"
	"os"

	"fjacquet/budget-report/cmd/export"
	"fjacquet/budget-report/cmd/report"
	"fjacquet/budget-report/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
