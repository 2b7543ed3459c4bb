// Package types holds the interfaces shared by the server and its method
// handlers.
package types

import "github.com/tliron/glsp"

// RequestContext is the context of one LSP method call.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error
}

func NewRequestContext(server ServerContext, ctx *glsp.Context) *RequestContext {
	return &RequestContext{Server: server, GLSP: ctx}
}

// AddWarning records a non-fatal problem. The middleware logs warnings
// after the handler returns.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

func (r *RequestContext) Warnings() []error {
	return r.warnings
}
