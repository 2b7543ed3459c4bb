package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/log"
	"github.com/bmatcuk/doublestar/v4"
)

// patterns are the globs that select files, relative to the root.
type patterns struct {
	include []string
	exclude []string
}

// sourcePatterns adds the @source directives of the input stylesheet to
// the configured content globs. Directive globs are relative to the
// stylesheet; they are rewritten relative to the root.
func (b *Builder) sourcePatterns(input []byte) patterns {
	p := patterns{include: slices.Clone(b.cfg.Content)}
	if input == nil {
		return p
	}
	dir := filepath.Dir(b.cfg.Path(b.cfg.Input))
	for _, src := range extract.Sources(input) {
		pattern, ok := rootRelative(b.cfg.Root, dir, src.Pattern)
		if !ok {
			log.Warn("Ignoring @source %q: outside the project root", src.Pattern)
			continue
		}
		if src.Negated {
			p.exclude = append(p.exclude, pattern)
		} else {
			p.include = append(p.include, pattern)
		}
	}
	return p
}

// rootRelative rewrites a glob relative to dir as a slash glob relative to
// root. A directory without glob syntax stands for everything under it.
func rootRelative(root, dir, pattern string) (string, bool) {
	abs := filepath.Join(dir, filepath.FromSlash(pattern))
	if !strings.ContainsAny(pattern, "*?[{") {
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			abs = filepath.Join(abs, "**")
		}
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// shouldSkipDirectory reports hidden and excluded directories.
func (b *Builder) shouldSkipDirectory(d fs.DirEntry, path string) bool {
	if !d.IsDir() || path == b.cfg.Root {
		return false
	}
	name := d.Name()
	return strings.HasPrefix(name, ".") || slices.Contains(b.cfg.Exclude, name)
}

// matchesAnyPattern reports whether a slash path matches one of patterns.
func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// Discover returns the files under the root selected by the content globs
// and the @source directives of input, in walk order. The input stylesheet
// and the output file are never selected.
func (b *Builder) Discover(input []byte) ([]string, error) {
	p := b.sourcePatterns(input)
	skip := []string{b.cfg.Path(b.cfg.Input), b.cfg.Path(b.cfg.Output)}

	var files []string
	err := filepath.WalkDir(b.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == b.cfg.Root {
				return err
			}
			log.Debug("Skipping %s: %v", path, err)
			return nil
		}
		if b.shouldSkipDirectory(d, path) {
			return filepath.SkipDir
		}
		if d.IsDir() || slices.Contains(skip, path) {
			return nil
		}
		rel, err := filepath.Rel(b.cfg.Root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if matchesAnyPattern(rel, p.include) && !matchesAnyPattern(rel, p.exclude) {
			files = append(files, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("project root %s does not exist: %w", b.cfg.Root, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", b.cfg.Root, err)
	}
	log.Debug("Discovered %d files under %s", len(files), b.cfg.Root)
	return files, nil
}
