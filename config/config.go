package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/numkem/sqlcat/catalog"
)

type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Config carries the catalog locations and the database the exec commands
// run against. CLI flags override anything set here.
type Config struct {
	MetadataFile string   `yaml:"metadata_file"`
	ScriptsDir   string   `yaml:"scripts_dir"`
	Database     Database `yaml:"database"`
}

func Default() *Config {
	return &Config{
		MetadataFile: catalog.DEFAULT_METADATA_FILENAME,
		ScriptsDir:   ".",
		Database: Database{
			Driver: "sqlite",
		},
	}
}

// Load overlays the YAML file at path onto the defaults. An empty path
// returns the defaults as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
