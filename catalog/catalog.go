package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	HISTORY_FOLDER_NAME = "_history"
	SCRIPT_EXTENSION    = ".sql"
)

// Script is a record resolved together with its file content. FileMissing
// is set when the record exists in the index but its backing file could not
// be read.
type Script struct {
	Record
	Content     string
	FileMissing bool
}

// Catalog manages named SQL scripts: their text files under the scripts
// directory and their metadata in the JSON index. The index is loaded once
// at construction and persisted whole after every mutation.
type Catalog struct {
	store      *MetadataStore
	scriptsDir string
	index      *Index
}

func New(metadataFile, scriptsDir string) (*Catalog, error) {
	store := NewMetadataStore(metadataFile)
	idx, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Catalog{
		store:      store,
		scriptsDir: scriptsDir,
		index:      idx,
	}, nil
}

// Slug derives the default file name stem for a script name by lowercasing
// it and replacing spaces with underscores.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func (c *Catalog) ScriptsDir() string {
	return c.scriptsDir
}

func (c *Catalog) exists(name string) bool {
	for _, rec := range c.index.Scripts {
		if rec.Name == name {
			return true
		}
	}

	return false
}

// Add registers a new script. When scriptPath is empty the file is placed
// at <scriptsDir>/<category>/<slug>.sql. When content is given the file is
// written there, overwriting whatever the path held before. Without content
// a file must already exist at the path.
func (c *Catalog) Add(name, category, description, content, scriptPath string) (*Record, error) {
	if c.exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, name)
	}

	categoryDir := filepath.Join(c.scriptsDir, category)
	if err := os.MkdirAll(categoryDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create category directory %s: %w", categoryDir, err)
	}

	path := scriptPath
	if path == "" {
		path = filepath.Join(categoryDir, Slug(name)+SCRIPT_EXTENSION)
	}

	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write script file %s: %w", path, err)
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingContent, path)
	}

	rec := Record{
		Name:        name,
		Category:    category,
		Description: description,
		Path:        path,
		Version:     1,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	c.index.Scripts = append(c.index.Scripts, rec)
	if err := c.store.Save(c.index); err != nil {
		return nil, err
	}

	log.Debugf("added script %q to category %q", name, category)
	return &rec, nil
}

func (c *Catalog) resolve(rec Record) *Script {
	s := &Script{Record: rec}

	content, err := os.ReadFile(rec.Path)
	if err != nil {
		log.Warnf("failed to read script file %s: %v", rec.Path, err)
		s.FileMissing = true
		return s
	}

	s.Content = string(content)
	return s
}

// FindByName returns the first record with the given name along with its
// content. Names are expected to be unique but this is only enforced on Add.
func (c *Catalog) FindByName(name string) (*Script, error) {
	for _, rec := range c.index.Scripts {
		if rec.Name == name {
			return c.resolve(rec), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// FindByCategory returns every script in the category, in index order.
func (c *Catalog) FindByCategory(category string) []*Script {
	var scripts []*Script
	for _, rec := range c.index.Scripts {
		if rec.Category == category {
			scripts = append(scripts, c.resolve(rec))
		}
	}

	return scripts
}

// All returns every registered script, in index order.
func (c *Catalog) All() []*Script {
	scripts := make([]*Script, 0, len(c.index.Scripts))
	for _, rec := range c.index.Scripts {
		scripts = append(scripts, c.resolve(rec))
	}

	return scripts
}

// Categories returns each distinct category once.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, rec := range c.index.Scripts {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			categories = append(categories, rec.Category)
		}
	}

	return categories
}

// Delete removes the first record with the given name from the index. With
// deleteFile the backing file is removed as well; a file that is already
// gone only logs a warning. History snapshots are left in place.
func (c *Catalog) Delete(name string, deleteFile bool) error {
	for i, rec := range c.index.Scripts {
		if rec.Name != name {
			continue
		}

		if deleteFile {
			if err := os.Remove(rec.Path); err != nil {
				if os.IsNotExist(err) {
					log.Warnf("script file %s is already gone", rec.Path)
				} else {
					return fmt.Errorf("failed to remove script file %s: %w", rec.Path, err)
				}
			}
		}

		c.index.Scripts = append(c.index.Scripts[:i], c.index.Scripts[i+1:]...)
		return c.store.Save(c.index)
	}

	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Search returns every script whose content, name or description contains
// the query, case insensitively.
func (c *Catalog) Search(query string) []*Script {
	q := strings.ToLower(query)

	var scripts []*Script
	for _, rec := range c.index.Scripts {
		s := c.resolve(rec)
		if strings.Contains(strings.ToLower(s.Content), q) ||
			strings.Contains(strings.ToLower(rec.Name), q) ||
			strings.Contains(strings.ToLower(rec.Description), q) {
			scripts = append(scripts, s)
		}
	}

	return scripts
}

// Update replaces a script's content. The previous content is snapshotted
// under the version it supersedes, then the live file is overwritten and
// the record's version and updated_at are bumped. The three writes are not
// atomic: a crash in between can leave them out of step.
func (c *Catalog) Update(name, content string) (*Record, error) {
	for i := range c.index.Scripts {
		rec := &c.index.Scripts[i]
		if rec.Name != name {
			continue
		}

		if err := c.snapshot(rec); err != nil {
			return nil, err
		}

		if err := os.WriteFile(rec.Path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write script file %s: %w", rec.Path, err)
		}

		rec.Version++
		rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

		if err := c.store.Save(c.index); err != nil {
			return nil, err
		}

		log.Debugf("updated script %q to version %d", name, rec.Version)

		out := *rec
		return &out, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
