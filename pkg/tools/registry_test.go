package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayra/tradebot/pkg/kite"
)

func echoDefinition(name string) Definition {
	return Definition{
		Name:        name,
		Description: "Echoes its input",
		Params: []Param{
			{Name: "input", Type: "string", Description: "Input value", Required: true},
			{Name: "mode", Type: "string", Description: "Echo mode", Enum: []string{"plain", "loud"}, Default: "plain"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return args, nil
		},
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(echoDefinition("echo")))
	assert.Equal(t, 1, r.Len())

	err := r.Register(echoDefinition("echo"))
	assert.ErrorContains(t, err, "already registered")
}

func TestRegistry_Register_InvalidDefinition(t *testing.T) {
	noop := func(ctx context.Context, args map[string]interface{}) (interface{}, error) { return nil, nil }

	tests := []struct {
		name string
		def  Definition
	}{
		{"empty name", Definition{Description: "x", Handler: noop}},
		{"empty description", Definition{Name: "x", Handler: noop}},
		{"nil handler", Definition{Name: "x", Description: "x"}},
		{"bad param type", Definition{Name: "x", Description: "x", Handler: noop,
			Params: []Param{{Name: "p", Type: "float"}}}},
		{"array without item type", Definition{Name: "x", Description: "x", Handler: noop,
			Params: []Param{{Name: "p", Type: "array"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewRegistry().Register(tt.def))
		})
	}
}

func TestRegistry_Descriptors_SortedAndStable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoDefinition("zebra")))
	require.NoError(t, r.Register(echoDefinition("alpha")))

	descriptors := r.Descriptors()
	require.Len(t, descriptors, 2)
	assert.Equal(t, "alpha", descriptors[0].Name)
	assert.Equal(t, "zebra", descriptors[1].Name)

	schema := descriptors[0].InputSchema
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"input"}, schema["required"])

	properties := schema["properties"].(map[string]interface{})
	mode := properties["mode"].(map[string]interface{})
	assert.Equal(t, "plain", mode["default"])
	assert.Equal(t, []string{"plain", "loud"}, mode["enum"])
}

func TestDispatch_UnknownTool(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoDefinition("echo")))

	env := r.Dispatch(context.Background(), "nope", nil)

	assert.False(t, env.Success)
	assert.Equal(t, "Unknown tool: nope", env.Error)
	assert.Equal(t, "nope", env.Tool)
	assert.Empty(t, env.Hint)
}

func TestDispatch_MissingRequiredArgument(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoDefinition("echo")))

	env := r.Dispatch(context.Background(), "echo", map[string]interface{}{})

	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "invalid arguments")
	assert.Contains(t, env.Error, "input")
	assert.Equal(t, "echo", env.Tool)
}

func TestDispatch_EnumRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoDefinition("echo")))

	env := r.Dispatch(context.Background(), "echo", map[string]interface{}{
		"input": "hi",
		"mode":  "whisper",
	})

	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "invalid arguments")
}

func TestDispatch_AppliesDefaults(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(echoDefinition("echo")))

	env := r.Dispatch(context.Background(), "echo", map[string]interface{}{"input": "hi"})

	require.True(t, env.Success)
	args := env.Data.(map[string]interface{})
	assert.Equal(t, "plain", args["mode"])
}

func TestDispatch_NilArguments(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Definition{
		Name:        "status",
		Description: "No-arg tool",
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return "ok", nil
		},
	}))

	env := r.Dispatch(context.Background(), "status", nil)
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Data)
}

func TestDispatch_HandlerErrorMapping(t *testing.T) {
	failing := func(err error) Definition {
		return Definition{
			Name:        "fail",
			Description: "Always fails",
			Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return nil, err
			},
		}
	}

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"auth error", &kite.AuthError{Message: "no access token set"}, true},
		{"gateway error", &kite.GatewayError{Message: "Insufficient funds."}, true},
		{"plain error", errors.New("something odd"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, r.Register(failing(tt.err)))

			env := r.Dispatch(context.Background(), "fail", nil)

			assert.False(t, env.Success)
			assert.Equal(t, "fail", env.Tool)
			assert.NotEmpty(t, env.Error)
			if tt.wantHint {
				assert.NotEmpty(t, env.Hint)
			} else {
				assert.Empty(t, env.Hint)
			}
		})
	}
}

func TestDispatch_HandlerPanicRecovered(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Definition{
		Name:        "boom",
		Description: "Panics",
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			var holdings []kite.Holding
			_ = holdings[3] // deliberate out-of-range
			return nil, nil
		},
	}))

	env := r.Dispatch(context.Background(), "boom", nil)

	assert.False(t, env.Success)
	assert.Equal(t, "boom", env.Tool)
	assert.Contains(t, env.Error, "internal error")
}

func TestEnvelope_Text(t *testing.T) {
	env := Envelope{Success: false, Error: "Unknown tool: nope", Tool: "nope"}
	text := env.Text()

	assert.Contains(t, text, `"success": false`)
	assert.Contains(t, text, `"error": "Unknown tool: nope"`)
	assert.Contains(t, text, `"tool": "nope"`)
	assert.NotContains(t, text, "hint")
}
