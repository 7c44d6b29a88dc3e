package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/numkem/sqlcat/catalog"
	"github.com/numkem/sqlcat/executor"
)

var execCmd = &cobra.Command{
	Use:   "exec <name>",
	Args:  cobra.ExactArgs(1),
	Short: "Execute a catalog script against a database",
	RunE:  execCmdRun,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().String("driver", "", "database/sql driver name")
	execCmd.Flags().String("dsn", "", "database connection string")
	execCmd.Flags().StringArrayP("param", "p", nil, "named parameter as key=value, repeatable")
	execCmd.Flags().StringArrayP("arg", "a", nil, "positional value for a ? placeholder, repeatable")
}

func parseNamedParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any)
	for _, p := range pairs {
		k, v, found := strings.Cut(p, "=")
		if !found {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", p)
		}
		params[k] = v
	}

	return params, nil
}

func execCmdRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := catalog.New(cfg.MetadataFile, cfg.ScriptsDir)
	if err != nil {
		return err
	}

	driver := cmd.Flag("driver").Value.String()
	if driver == "" {
		driver = cfg.Database.Driver
	}
	dsn := cmd.Flag("dsn").Value.String()
	if dsn == "" {
		dsn = cfg.Database.DSN
	}
	if dsn == "" {
		return fmt.Errorf("a database DSN is required, set --dsn or database.dsn in the config")
	}

	pairs, err := cmd.Flags().GetStringArray("param")
	if err != nil {
		return err
	}
	named, err := parseNamedParams(pairs)
	if err != nil {
		return err
	}

	values, err := cmd.Flags().GetStringArray("arg")
	if err != nil {
		return err
	}
	positional := make([]any, len(values))
	for i, v := range values {
		positional[i] = v
	}

	ex, err := executor.New(driver, dsn, cat)
	if err != nil {
		return err
	}
	defer ex.Close()

	rows, err := ex.RunScript(cmd.Context(), args[0], executor.Params{
		Named:      named,
		Positional: positional,
	})
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		cmd.Println("No rows returned")
		return nil
	}

	var columns []string
	for col := range rows[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	t := newTable(cmd)
	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		out := make(table.Row, len(columns))
		for i, col := range columns {
			out[i] = row[col]
		}
		t.AppendRow(out)
	}

	t.Render()
	return nil
}
