package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <name>",
	Args:  cobra.ExactArgs(1),
	Short: "Show the saved versions of a script",
	RunE:  historyCmdRun,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func historyCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	versions := cat.History(args[0])
	if len(versions) == 0 {
		return fmt.Errorf("no history for script %q", args[0])
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Version", "Current", "Path"})

	for _, v := range versions {
		current := ""
		if v.Current {
			current = "*"
		}
		t.AppendRow(table.Row{v.Version, current, v.Path})
	}

	t.Render()
	return nil
}
