package lifecycle

import (
	"bennypowers.dev/utilgen/lsp/methods/workspace"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized loads the workspace and registers file watchers. Failures
// are reported to the client; the server keeps running on the built-in
// design.
func Initialized(req *types.RequestContext, _ *protocol.InitializedParams) error {
	req.Server.SetGLSPContext(req.GLSP)
	if err := req.Server.LoadWorkspace(); err != nil {
		workspace.LogWarning(req.GLSP, "Failed to load the workspace configuration: %v", err)
	}
	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		workspace.LogWarning(req.GLSP, "Failed to register file watchers: %v", err)
	}
	return nil
}
