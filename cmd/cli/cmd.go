package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/numkem/sqlcat/catalog"
	"github.com/numkem/sqlcat/config"
)

var rootCmd = &cobra.Command{
	Use:   "sqlcat",
	Short: "sqlcat CLI",
	Long:  `sqlcat is a command line interface for managing a catalog of named SQL scripts`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(cmd.Flag("log-level").Value.String())
		if err != nil {
			return fmt.Errorf("invalid log level: %v", err)
		}
		log.SetLevel(level)

		return nil
	},
	SilenceUsage: true,
}

func init() {
	if os.Getenv("DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "set the logger to this log level")
	rootCmd.PersistentFlags().StringP("config", "C", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringP("metadata-file", "m", "", "path to the metadata index file")
	rootCmd.PersistentFlags().StringP("scripts-dir", "s", "", "base directory for script files")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig builds the effective configuration from the config file with
// whatever flags were set layered on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flag("config").Value.String())
	if err != nil {
		return nil, err
	}

	if v := cmd.Flag("metadata-file").Value.String(); v != "" {
		cfg.MetadataFile = v
	}
	if v := cmd.Flag("scripts-dir").Value.String(); v != "" {
		cfg.ScriptsDir = v
	}

	return cfg, nil
}

func newCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return catalog.New(cfg.MetadataFile, cfg.ScriptsDir)
}

// contentFromFlags resolves the script content from either --content or
// --file, whichever was given.
func contentFromFlags(cmd *cobra.Command) (string, error) {
	content := cmd.Flag("content").Value.String()
	file := cmd.Flag("file").Value.String()
	if content == "" && file == "" {
		return "", fmt.Errorf("either --content or --file is required")
	}
	if content != "" {
		return content, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read script file %s: %v", file, err)
	}

	return string(raw), nil
}

func printScript(cmd *cobra.Command, s *catalog.Script, includeContent bool) {
	cmd.Printf("Name: %s\n", s.Name)
	cmd.Printf("Category: %s\n", s.Category)
	cmd.Printf("Description: %s\n", s.Description)
	cmd.Printf("Path: %s\n", s.Path)
	if s.Version > 0 {
		cmd.Printf("Version: %d\n", s.Version)
	}

	if includeContent {
		cmd.Println("\nContent:")
		cmd.Println(strings.Repeat("-", 50))
		if s.FileMissing {
			cmd.Println("(script file is missing)")
		} else {
			cmd.Println(s.Content)
		}
	}
}
