// Command utilgen-language-server serves the utilgen language server over
// stdio.
package main

import (
	"os"

	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/lsp"
)

func main() {
	server := lsp.NewServer()
	defer server.Close()

	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		server.Close()
		os.Exit(1)
	}
}
