// Package workspace handles workspace notifications and messages to the
// client.
package workspace

import (
	"fmt"

	"bennypowers.dev/utilgen/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LogError logs to stderr and, with a client, to its log.
func LogError(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	notify(ctx, protocol.MessageTypeError, message)
}

// LogWarning logs to stderr and, with a client, to its log.
func LogWarning(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	notify(ctx, protocol.MessageTypeWarning, message)
}

func notify(ctx *glsp.Context, kind protocol.MessageType, message string) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	// Notify blocks on the connection; handlers must not wait on it.
	go ctx.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    kind,
		Message: message,
	})
}
