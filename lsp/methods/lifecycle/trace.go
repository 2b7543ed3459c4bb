package lifecycle

import (
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func SetTrace(_ *types.RequestContext, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
