package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"
)

var versionFilePattern = regexp.MustCompile(`^v(\d+)\.sql$`)

// Version is one entry of a script's linear history.
type Version struct {
	Version int
	Content string
	Path    string
	Current bool
}

func (c *Catalog) historyDir(name string) string {
	return filepath.Join(c.scriptsDir, HISTORY_FOLDER_NAME, Slug(name))
}

// snapshot writes the record's current content to the history directory
// under the version number it is about to supersede. An unreadable current
// file skips the snapshot with a warning instead of blocking the update.
func (c *Catalog) snapshot(rec *Record) error {
	old, err := os.ReadFile(rec.Path)
	if err != nil {
		log.Warnf("skipping history snapshot, current file %s is unreadable: %v", rec.Path, err)
		return nil
	}

	dir := c.historyDir(rec.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("v%d%s", rec.Version, SCRIPT_EXTENSION))
	if err := os.WriteFile(path, old, 0644); err != nil {
		return fmt.Errorf("failed to write history snapshot %s: %w", path, err)
	}

	return nil
}

// History returns a script's saved snapshots plus its live content, sorted
// by version ascending. The live record is always included and marked
// Current with its own version number, even when a higher numbered snapshot
// file exists on disk. Unknown scripts and scripts without a history
// directory return an empty list.
func (c *Catalog) History(name string) []Version {
	var rec *Record
	for i := range c.index.Scripts {
		if c.index.Scripts[i].Name == name {
			rec = &c.index.Scripts[i]
			break
		}
	}
	if rec == nil {
		return nil
	}

	entries, err := os.ReadDir(c.historyDir(name))
	if err != nil {
		return nil
	}

	var versions []Version
	for _, e := range entries {
		m := versionFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		path := filepath.Join(c.historyDir(name), e.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warnf("failed to read history snapshot %s: %v", path, err)
			continue
		}

		versions = append(versions, Version{
			Version: n,
			Content: string(content),
			Path:    path,
		})
	}

	live := c.resolve(*rec)
	versions = append(versions, Version{
		Version: live.Version,
		Content: live.Content,
		Path:    live.Path,
		Current: true,
	})

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})

	return versions
}
