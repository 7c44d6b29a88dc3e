package main

import (
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a script to the catalog",
	RunE:  addCmdRun,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("name", "n", "", "The name of the script")
	addCmd.Flags().StringP("category", "c", "", "The category of the script")
	addCmd.Flags().StringP("description", "d", "", "A short description of the script")
	addCmd.Flags().String("content", "", "The SQL content of the script")
	addCmd.Flags().StringP("file", "f", "", "Path to a file holding the SQL content")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("category")
	addCmd.MarkFlagRequired("description")
}

func addCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	content, err := contentFromFlags(cmd)
	if err != nil {
		return err
	}

	name := cmd.Flag("name").Value.String()
	category := cmd.Flag("category").Value.String()

	if _, err := cat.Add(name, category, cmd.Flag("description").Value.String(), content, ""); err != nil {
		return err
	}

	cmd.Printf("Script %q added to category %q\n", name, category)
	return nil
}
