package lsp

import (
	"errors"
	"testing"

	"bennypowers.dev/utilgen/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
)

func TestMethodRecoversPanics(t *testing.T) {
	s := NewServer()
	t.Cleanup(func() { _ = s.Close() })

	ctx := &glsp.Context{Method: "test/panic"}

	handler := method(s, "test/panic", func(*types.RequestContext, string) (int, error) {
		panic("boom")
	})
	result, err := handler(ctx, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test/panic")
	assert.Zero(t, result)
}

func TestMethodWrapsErrors(t *testing.T) {
	s := NewServer()
	t.Cleanup(func() { _ = s.Close() })
	sentinel := errors.New("nope")

	handler := method(s, "test/error", func(*types.RequestContext, string) (int, error) {
		return 42, sentinel
	})
	result, err := handler(nil, "x")
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, "test/error: nope", err.Error())
	assert.Zero(t, result)

	ok := method(s, "test/ok", func(*types.RequestContext, string) (int, error) { return 7, nil })
	result, err = ok(nil, "x")
	require.NoError(t, err)
	assert.Equal(t, 7, result)
}

func TestNotifyReportsWarnings(t *testing.T) {
	s := NewServer()
	t.Cleanup(func() { _ = s.Close() })

	handler := notify(s, "test/warn", func(req *types.RequestContext, _ string) error {
		req.AddWarning(errors.New("stale"))
		return nil
	})
	assert.NoError(t, handler(nil, "x"))

	recovered := noParam(s, "test/noparam", func(*types.RequestContext) error { panic("boom") })
	assert.Error(t, recovered(nil))
}
