package methods

import (
	"context"
	"testing"

	"github.com/creachadair/jrpc2/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Request struct {
	Parameter string `json:"parameter"`
}

func TestNewHandlerNoArrayParameters(t *testing.T) {
	callCount := 0
	f := func(_ context.Context, request Request) error {
		callCount++
		assert.Equal(t, "bar", request.Parameter)
		return nil
	}

	// object parameters should work with our handlers
	customHandler := NewHandler(f)
	_, err := callHandler(t, customHandler, `{"parameter": "bar"}`)
	require.NoError(t, err)
	require.Equal(t, 1, callCount)

	// Array requests should work with the normal handler, but not with our handlers
	_, err = callHandler(t, handler.New(f), `["bar"]`)
	require.NoError(t, err)
	require.Equal(t, 2, callCount)

	_, err = callHandler(t, customHandler, `["bar"]`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid parameters")
	require.Equal(t, 2, callCount)
}

func TestNewHandlerPanicsOnInvalidFunction(t *testing.T) {
	assert.Panics(t, func() {
		NewHandler("not a function")
	})
}
