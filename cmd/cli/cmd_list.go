package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listAllCmd = &cobra.Command{
	Use:     "list-all",
	Aliases: []string{"ls"},
	Short:   "List every script in the catalog",
	RunE:    listAllCmdRun,
}

var listCategoriesCmd = &cobra.Command{
	Use:   "list-categories",
	Short: "List every category",
	RunE:  listCategoriesCmdRun,
}

func init() {
	rootCmd.AddCommand(listAllCmd)
	rootCmd.AddCommand(listCategoriesCmd)
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateFooter = false

	return t
}

func listAllCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Name", "Category", "Version", "Description"})

	for _, s := range cat.All() {
		t.AppendRow(table.Row{s.Name, s.Category, s.Version, s.Description})
	}

	t.Render()
	return nil
}

func listCategoriesCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	for _, category := range cat.Categories() {
		cmd.Printf("- %s\n", category)
	}

	return nil
}
