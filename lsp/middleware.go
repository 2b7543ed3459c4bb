package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/lsp/methods/workspace"
	"bennypowers.dev/utilgen/lsp/types"
	"github.com/tliron/glsp"
)

// recoverHandler turns a handler panic into an error reported to the
// client, so one bad request cannot take the server down.
func recoverHandler(ctx *glsp.Context, methodName string, err *error) {
	if r := recover(); r != nil {
		log.Error("PANIC in %s: %v\n%s", methodName, r, debug.Stack())
		workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
		*err = fmt.Errorf("internal error in %s", methodName)
	}
}

// finish logs the request's warnings and wraps its error.
func finish(ctx *glsp.Context, methodName string, req *types.RequestContext, err error) error {
	for _, w := range req.Warnings() {
		workspace.LogWarning(ctx, "%s: %v", methodName, w)
	}
	if err != nil {
		workspace.LogError(ctx, "%s: %v", methodName, err)
		return fmt.Errorf("%s: %w", methodName, err)
	}
	log.Debug("%s completed", methodName)
	return nil
}

// method wraps a request handler with panic recovery and logging.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer recoverHandler(ctx, methodName, &err)
		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		if err = finish(ctx, methodName, req, err); err != nil {
			var zero R
			return zero, err
		}
		return result, nil
	}
}

// notify wraps a notification handler.
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer recoverHandler(ctx, methodName, &err)
		req := types.NewRequestContext(s, ctx)
		return finish(ctx, methodName, req, handler(req, params))
	}
}

// noParam wraps a handler without parameters, like shutdown.
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer recoverHandler(ctx, methodName, &err)
		req := types.NewRequestContext(s, ctx)
		return finish(ctx, methodName, req, handler(req))
	}
}
