package main

import (
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Short:   "Remove a script from the catalog",
	RunE:    rmCmdRun,
}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().Bool("delete-file", false, "Also remove the script file")
}

func rmCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	deleteFile, err := cmd.Flags().GetBool("delete-file")
	if err != nil {
		return err
	}

	if err := cat.Delete(args[0], deleteFile); err != nil {
		return err
	}

	cmd.Printf("Script %q removed\n", args[0])
	return nil
}
