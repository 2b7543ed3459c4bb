package lsp

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LoadWorkspace loads the configuration under the root, builds its design
// and swaps it into the store. On error nothing changes.
func (s *Server) LoadWorkspace() error {
	root := s.RootPath()
	if root == "" {
		root = "."
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	d, err := cfg.Design()
	if err != nil {
		return err
	}

	s.mu.Lock()
	generation := s.store.Swap(d)
	s.builder = build.New(cfg, s.store)
	s.mu.Unlock()

	source := cfg.File
	if source == "" {
		source = "defaults"
	}
	log.Info("Loaded design generation %d from %s", generation, source)
	return nil
}

// IsWatchedFile reports whether a change to path requires reloading the
// workspace: a file the current design was built from, or a file that
// could become the configuration.
func (s *Server) IsWatchedFile(path string) bool {
	path = filepath.Clean(path)
	if slices.Contains(s.Builder().Config().WatchedFiles(), path) {
		return true
	}
	root := s.RootPath()
	if root == "" {
		return false
	}
	return slices.Contains(configCandidates(root), path)
}

// configCandidates are the files config.Load looks for under root.
func configCandidates(root string) []string {
	paths := make([]string, 0, len(config.FileNames)+2)
	for _, name := range config.FileNames {
		paths = append(paths, filepath.Join(root, name))
	}
	return append(paths,
		filepath.Join(root, "package.json"),
		filepath.Join(root, ".config", "design-tokens.yaml"),
	)
}

// RegisterFileWatchers asks the client to watch the configuration
// candidates and the files the current design was built from.
func (s *Server) RegisterFileWatchers(ctx *glsp.Context) error {
	if ctx == nil || ctx.Call == nil {
		log.Debug("Skipping file watcher registration: no client")
		return nil
	}
	var watchers []protocol.FileSystemWatcher
	seen := make(map[string]bool)
	add := func(path string) {
		pattern := filepath.ToSlash(filepath.Clean(path))
		if !seen[pattern] {
			seen[pattern] = true
			watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: pattern})
		}
	}
	if root := s.RootPath(); root != "" {
		for _, path := range configCandidates(root) {
			add(path)
		}
	}
	for _, path := range s.Builder().Config().WatchedFiles() {
		add(path)
	}
	if len(watchers) == 0 {
		return nil
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{{
			ID:     "utilgen-file-watcher",
			Method: "workspace/didChangeWatchedFiles",
			RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
				Watchers: watchers,
			},
		}},
	}
	// client/registerCapability is a request; waiting for its response on
	// the handler goroutine would deadlock the connection.
	go func() {
		var result any
		ctx.Call(protocol.ServerClientRegisterCapability, params, &result)
		log.Debug("Registered %d file watchers", len(watchers))
	}()
	return nil
}
