package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	root := GetRootCmd()

	assert.Equal(t, "tradebot", root.Use)
	assert.Equal(t, version, root.Version)
	assert.Equal(t, version, GetVersion())
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	root := GetRootCmd()

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestServeCmd_Registered(t *testing.T) {
	var found bool
	for _, cmd := range GetRootCmd().Commands() {
		if cmd.Use == "serve" {
			found = true
			assert.NotNil(t, cmd.RunE)
		}
	}
	require.True(t, found, "serve command must be registered")
}
