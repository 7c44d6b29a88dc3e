package main

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Args:  cobra.ExactArgs(1),
	Short: "Replace a script's content, keeping the previous version in history",
	RunE:  updateCmdRun,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("content", "", "The new SQL content of the script")
	updateCmd.Flags().StringP("file", "f", "", "Path to a file holding the new SQL content")
}

func updateCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	content, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}

	rec, err := cat.Update(args[0], content)
	if err != nil {
		return err
	}

	cmd.Printf("Script %q updated to version %d\n", rec.Name, rec.Version)
	return nil
}
