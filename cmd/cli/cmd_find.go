package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var findNameCmd = &cobra.Command{
	Use:   "find-name <name>",
	Args:  cobra.ExactArgs(1),
	Short: "Show a script by name",
	RunE:  findNameCmdRun,
}

var findCategoryCmd = &cobra.Command{
	Use:   "find-category <category>",
	Args:  cobra.ExactArgs(1),
	Short: "Show every script in a category",
	RunE:  findCategoryCmdRun,
}

func init() {
	rootCmd.AddCommand(findNameCmd)
	rootCmd.AddCommand(findCategoryCmd)
}

func findNameCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	script, err := cat.FindByName(args[0])
	if err != nil {
		return err
	}

	printScript(cmd, script, true)
	return nil
}

func findCategoryCmdRun(cmd *cobra.Command, args []string) error {
	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	scripts := cat.FindByCategory(args[0])
	if len(scripts) == 0 {
		return fmt.Errorf("no scripts in category %q", args[0])
	}

	for _, s := range scripts {
		printScript(cmd, s, true)
		cmd.Println(strings.Repeat("-", 50))
	}

	return nil
}
