package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/scanner"
)

// ScanFile returns the candidates in one file's content. In regions mode
// languages the extractor knows are scanned region by region.
func ScanFile(path string, content []byte, mode config.Mode) collections.Set[string] {
	s := scanner.ForFile(path)
	if mode == config.ModeRegions {
		return extract.Scan(s, extract.LanguageFor(path), content)
	}
	return s.Scan(content)
}

// Scan reads and scans files on the configured number of workers and
// returns the union of their candidates. Unreadable files are reported
// together; the candidates of the others are still returned.
func (b *Builder) Scan(ctx context.Context, files []string) (collections.Set[string], error) {
	workers := min(b.cfg.Parallelism(), max(len(files), 1))
	paths := make(chan string)
	results := make([]collections.Set[string], workers)
	errs := make([][]error, workers)

	var wg sync.WaitGroup
	for w := range workers {
		results[w] = collections.NewSet[string]()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				content, err := os.ReadFile(path) //nolint:gosec // G304: scanning project sources is the point
				if err != nil {
					errs[w] = append(errs[w], fmt.Errorf("failed to read %s: %w", path, err))
					continue
				}
				results[w].Union(ScanFile(path, content, b.cfg.Mode))
			}
		}()
	}

feed:
	for _, path := range files {
		select {
		case paths <- path:
		case <-ctx.Done():
			break feed
		}
	}
	close(paths)
	wg.Wait()

	candidates := collections.NewSet[string]()
	for _, set := range results {
		candidates.Union(set)
	}

	var all []error
	for _, e := range errs {
		all = append(all, e...)
	}
	if err := ctx.Err(); err != nil {
		all = append(all, err)
	}
	return candidates, errors.Join(all...)
}
