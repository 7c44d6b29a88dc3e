package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Args:  cobra.ExactArgs(1),
	Short: "Search scripts by content, name or description",
	RunE:  searchCmdRun,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func searchCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	scripts := cat.Search(args[0])
	if len(scripts) == 0 {
		return fmt.Errorf("no scripts matching %q", args[0])
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Name", "Category", "Path"})

	for _, s := range scripts {
		t.AppendRow(table.Row{s.Name, s.Category, s.Path})
	}

	t.Render()
	return nil
}
