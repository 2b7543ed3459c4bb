// Package build turns a configured project into a stylesheet: it discovers
// source files, scans them concurrently for candidates, resolves the
// candidates through a snapshot of the design, and orders and collapses the
// resulting rules.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/cssast"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/optimize"
	"bennypowers.dev/utilgen/internal/resolver"
	"bennypowers.dev/utilgen/internal/selector"
	"bennypowers.dev/utilgen/internal/stylesheet"
)

// Options control output.
type Options struct {
	Minify bool
}

// Result is a finished build.
type Result struct {
	CSS []byte
	// Files is the number of files scanned.
	Files int
	// Candidates is the number of distinct candidates found.
	Candidates int
	// Rules is the number of candidates that produced CSS.
	Rules      int
	Generation uint64
}

// Builder builds one project. It is safe to run builds concurrently; each
// pins the design current when it starts.
type Builder struct {
	cfg    *config.Config
	engine *resolver.Engine
}

// New returns a builder for cfg resolving through store.
func New(cfg *config.Config, store *design.Store) *Builder {
	if cfg == nil || store == nil {
		panic("build: New called with nil config or store")
	}
	c := *cfg
	c.Root = filepath.Clean(c.Root)
	return &Builder{cfg: &c, engine: resolver.NewEngine(store)}
}

// Config returns the builder's configuration. It must not be modified.
func (b *Builder) Config() *config.Config {
	return b.cfg
}

// Engine returns the resolution engine, shared with other consumers of the
// same store.
func (b *Builder) Engine() *resolver.Engine {
	return b.engine
}

// Build runs discovery, scanning, resolution and rendering.
func (b *Builder) Build(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	var input []byte
	if b.cfg.Input != "" {
		var err error
		if input, err = os.ReadFile(b.cfg.Path(b.cfg.Input)); err != nil {
			return nil, fmt.Errorf("failed to read input stylesheet: %w", err)
		}
	}

	files, err := b.Discover(input)
	if err != nil {
		return nil, err
	}
	candidates, err := b.Scan(ctx, files)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Warn("Some files could not be scanned: %v", err)
	}

	session := b.engine.Session()
	nodes, rules := b.Generate(session, candidates)

	var out []byte
	if input != nil {
		out, err = stylesheet.Render(input, nodes, session, stylesheet.Options{Minify: opts.Minify})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.cfg.Input, err)
		}
	} else {
		out = []byte(cssast.Print(nodes, opts.Minify))
	}

	log.Info("Generated %d rules from %d candidates in %d files (%s)",
		rules, len(candidates), len(files), time.Since(start).Round(time.Millisecond))
	return &Result{
		CSS:        out,
		Files:      len(files),
		Candidates: len(candidates),
		Rules:      rules,
		Generation: session.Generation(),
	}, nil
}

// Generate resolves candidates and returns the ordered, collapsed rules
// with the number of candidates that produced CSS. Shortcut names expand
// to the rules of their members under the shortcut's own class.
func (b *Builder) Generate(session *resolver.Session, candidates collections.Set[string]) ([]cssast.Node, int) {
	items := make([]optimize.Item, 0, len(candidates))
	count := 0
	for _, raw := range collections.Sorted(candidates) {
		if members, ok := b.cfg.Shortcuts[raw]; ok {
			shortcut := b.shortcut(session, raw, members)
			if len(shortcut) > 0 {
				items = append(items, shortcut...)
				count++
			}
			continue
		}
		rule := session.Resolve(raw)
		if rule == nil {
			continue
		}
		items = append(items, optimize.Item{Key: rule.Key, Nodes: rule.Nodes})
		count++
	}
	return optimize.Optimize(optimize.Sort(items)), count
}

func (b *Builder) shortcut(session *resolver.Session, name string, members []string) []optimize.Item {
	class := selector.Class(name)
	items := make([]optimize.Item, 0, len(members))
	for _, raw := range members {
		rule := session.Resolve(raw)
		if rule == nil {
			log.Warn("Shortcut %s: %q is not a utility", name, raw)
			continue
		}
		key := rule.Key
		key.Candidate = name
		items = append(items, optimize.Item{Key: key, Nodes: rule.Retarget(class, false)})
	}
	return items
}
