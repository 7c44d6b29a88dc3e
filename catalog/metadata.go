package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

const DEFAULT_METADATA_FILENAME = "scripts_metadata.json"

// Record is a single catalog entry as persisted in the metadata index.
// Version and the timestamps are omitted on legacy records.
type Record struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Version     int    `json:"version,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Index is the whole metadata document. Record order is kept as written.
type Index struct {
	Scripts []Record `json:"scripts"`
}

// MetadataStore reads and writes the JSON index file. Every save rewrites
// the whole document and there is no locking between writers: the last
// writer wins.
type MetadataStore struct {
	path string
}

func NewMetadataStore(path string) *MetadataStore {
	return &MetadataStore{path: path}
}

// Load reads the index from disk. A missing file yields an empty index.
// Malformed JSON also yields an empty index instead of an error so that a
// corrupt metadata file never takes the catalog down.
func (m *MetadataStore) Load() (*Index, error) {
	content, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{}, nil
		}
		return nil, fmt.Errorf("failed to read metadata file %s: %w", m.path, err)
	}

	idx := new(Index)
	if err := json.Unmarshal(content, idx); err != nil {
		log.Warnf("metadata file %s is not valid JSON, starting over with an empty index: %v", m.path, err)
		return &Index{}, nil
	}

	return idx, nil
}

// Save serializes the index pretty printed and overwrites the metadata file.
func (m *MetadataStore) Save(idx *Index) error {
	content, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metadata directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(m.path, content, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", m.path, err)
	}

	return nil
}
