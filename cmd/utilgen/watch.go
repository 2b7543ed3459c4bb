package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounce collects the burst of events an editor save produces into one
// rebuild.
const debounce = 100 * time.Millisecond

// watcher rebuilds a project when its files change. Configuration, theme
// and token changes swap a new design into the store first.
type watcher struct {
	cmd     *cobra.Command
	builder *build.Builder
	store   *design.Store
	opts    build.Options
	out     io.Writer
	fs      *fsnotify.Watcher
}

func watchProject(ctx context.Context, w *watcher) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer fsw.Close()
	w.fs = fsw

	cfg := w.builder.Config()
	if err := w.addTree(cfg.Root); err != nil {
		return err
	}
	w.addConfigDirs()
	log.Info("Watching %s for changes", cfg.Root)

	var fire <-chan time.Time
	reload := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.ignored(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Warn("Not watching %s: %v", event.Name, err)
					}
				}
			}
			if w.isConfig(event.Name) {
				reload = true
			}
			log.Debug("%s", event)
			fire = time.After(debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("File watcher: %v", err)
		case <-fire:
			fire = nil
			if reload {
				w.reload()
				reload = false
			}
			if err := buildOnce(ctx, w.builder, w.opts, w.out); err != nil {
				log.Error("Build failed: %v", err)
			}
		}
	}
}

// addTree watches dir and the directories under it that discovery would
// descend into.
func (w *watcher) addTree(dir string) error {
	exclude := w.builder.Config().Exclude
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (strings.HasPrefix(d.Name(), ".") || slices.Contains(exclude, d.Name())) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// addConfigDirs watches the directories of files the design is built from
// that the tree walk skips: hidden or outside the root.
func (w *watcher) addConfigDirs() {
	cfg := w.builder.Config()
	dirs := []string{filepath.Join(cfg.Root, ".config")}
	for _, path := range cfg.WatchedFiles() {
		dirs = append(dirs, filepath.Dir(path))
	}
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if err := w.fs.Add(dir); err != nil {
				log.Debug("Not watching %s: %v", dir, err)
			}
		}
	}
}

// ignored reports events that cannot change the output, including writes
// to the output itself.
func (w *watcher) ignored(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	cfg := w.builder.Config()
	return cfg.Output != "" && filepath.Clean(event.Name) == filepath.Clean(cfg.Path(cfg.Output))
}

// isConfig reports whether path is a file the design is built from, or a
// file that could become the configuration.
func (w *watcher) isConfig(path string) bool {
	cfg := w.builder.Config()
	path = filepath.Clean(path)
	if slices.Contains(cfg.WatchedFiles(), path) {
		return true
	}
	if path == filepath.Join(cfg.Root, ".config", "design-tokens.yaml") {
		return true
	}
	if filepath.Dir(path) != cfg.Root {
		return false
	}
	name := filepath.Base(path)
	return name == "package.json" || slices.Contains(config.FileNames, name)
}

// reload reads the configuration again and publishes its design. On error
// the previous design stays.
func (w *watcher) reload() {
	cfg, err := loadConfig(w.cmd)
	if err != nil {
		log.Warn("Keeping the previous configuration: %v", err)
		return
	}
	d, err := cfg.Design()
	if err != nil {
		log.Warn("Keeping the previous theme: %v", err)
		return
	}
	generation := w.store.Swap(d)
	w.builder = build.New(cfg, w.store)
	w.addConfigDirs()
	log.Info("Reloaded design generation %d", generation)
}
