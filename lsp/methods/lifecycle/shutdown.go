package lifecycle

import (
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/lsp/types"
)

// Shutdown releases the pooled tree-sitter parsers.
func Shutdown(_ *types.RequestContext) error {
	log.Info("Server shutting down")
	extract.ClosePools()
	return nil
}
