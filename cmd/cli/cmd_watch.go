package main

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the scripts directory and report changes to registered scripts",
	RunE:  watchCmdRun,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchCmdRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cat, err := newCatalog(cmd)
	if err != nil {
		return err
	}

	// Map absolute file paths back to script names so events can be
	// attributed to catalog entries.
	names := make(map[string]string)
	dirs := map[string]bool{cfg.ScriptsDir: true}
	for _, s := range cat.All() {
		abs, err := filepath.Abs(s.Path)
		if err != nil {
			continue
		}
		names[abs] = s.Name
		dirs[filepath.Dir(s.Path)] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %v", err)
	}
	defer watcher.Close()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Warnf("failed to watch %s: %v", dir, err)
		}
	}

	log.Infof("watching %d directories under %s", len(dirs), cfg.ScriptsDir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Write == fsnotify.Write {
				abs, err := filepath.Abs(event.Name)
				if err != nil {
					continue
				}

				if name, found := names[abs]; found {
					log.Infof("script %q changed on disk: %s", name, event.Name)
				} else {
					log.Debugf("unregistered file changed: %s", event.Name)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher error: %v", err)

		case <-cmd.Context().Done():
			log.Info("stopping watcher")
			return nil
		}
	}
}
