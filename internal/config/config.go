// Package config loads the project configuration.
//
// A project is configured by the first of these that exists at its root:
// utilgen.{yaml,yml,json,jsonc,toml}, a "utilgen" object in package.json,
// or the token files listed in an asimonim .config/design-tokens file.
// Without any of them, Default applies.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"

	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/theme"
	"github.com/bmatcuk/doublestar/v4"
)

// Mode selects how source files are scanned.
type Mode string

const (
	// ModeGeneric scans whole files with the byte scanner.
	ModeGeneric Mode = "generic"
	// ModeRegions scans only the class-bearing regions of languages the
	// extractor understands.
	ModeRegions Mode = "regions"
)

// DefaultContent is scanned when no content globs are configured.
var DefaultContent = []string{"**/*.{html,htm,vue,svelte,astro,js,jsx,mjs,ts,tsx,md,mdx}"}

// DefaultExclude lists directory names never descended into.
var DefaultExclude = []string{"node_modules", ".git", "dist", "build", ".next", ".nuxt", ".svelte-kit", "coverage"}

// Config is the project configuration. Relative paths are relative to Root.
type Config struct {
	// Root is the project root.
	Root string
	// File is the configuration file that was read, if any.
	File string

	Content   []string
	Exclude   []string
	Input     string
	Output    string
	Theme     string
	Tokens    []theme.TokenSource
	Prefix    string
	DarkMode  design.DarkMode
	Important bool
	Mode      Mode
	Workers   int
	// Shortcuts map a class to the candidates whose CSS it carries.
	Shortcuts map[string][]string
}

// Default returns the configuration used when a project has none.
func Default(root string) *Config {
	return &Config{
		Root:     root,
		Content:  slices.Clone(DefaultContent),
		Exclude:  slices.Clone(DefaultExclude),
		DarkMode: design.DarkMedia,
		Mode:     ModeGeneric,
	}
}

// Path resolves a configured path against the root.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Parallelism returns the number of scan workers to run.
func (c *Config) Parallelism() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks field values that decoding cannot.
func (c *Config) Validate() error {
	for _, pattern := range c.Content {
		if !doublestar.ValidatePattern(pattern) {
			return NewInvalidConfigError(c.File, "content", fmt.Sprintf("bad glob %q", pattern))
		}
	}
	switch c.Mode {
	case ModeGeneric, ModeRegions:
	default:
		return NewInvalidConfigError(c.File, "mode", fmt.Sprintf("unknown mode %q", c.Mode))
	}
	if c.Workers < 0 {
		return NewInvalidConfigError(c.File, "workers", fmt.Sprintf("%d workers", c.Workers))
	}
	for name, candidates := range c.Shortcuts {
		if name == "" || len(candidates) == 0 {
			return NewInvalidConfigError(c.File, "shortcuts", fmt.Sprintf("shortcut %q has no candidates", name))
		}
	}
	return nil
}

// LoadTheme builds the theme: the theme file over the built-in theme, then
// each token file in order.
func (c *Config) LoadTheme() (*theme.Theme, error) {
	t := theme.Default()
	if c.Theme != "" {
		var err error
		if t, err = theme.Load(c.Path(c.Theme), t); err != nil {
			return nil, err
		}
		log.Debug("Loaded theme %s", c.Theme)
	}
	for _, src := range c.Tokens {
		src.Path = c.Path(src.Path)
		var err error
		if t, err = theme.ApplyTokens(src, t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Design builds the utility registry for this configuration.
func (c *Config) Design() (*design.Design, error) {
	t, err := c.LoadTheme()
	if err != nil {
		return nil, err
	}
	return design.New(t, design.Options{
		Prefix:    c.Prefix,
		DarkMode:  c.DarkMode,
		Important: c.Important,
	}), nil
}

// WatchedFiles returns the absolute paths whose change requires a new
// Design: the configuration file, the theme, and the token files.
func (c *Config) WatchedFiles() []string {
	var files []string
	if c.File != "" {
		files = append(files, c.File)
	}
	if c.Theme != "" {
		files = append(files, c.Path(c.Theme))
	}
	for _, src := range c.Tokens {
		files = append(files, c.Path(src.Path))
	}
	return files
}
