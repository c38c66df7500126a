package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayra/tradebot/pkg/session"
)

func TestCatalog_Complete(t *testing.T) {
	gw := &mockGateway{}
	handlers := NewHandlers(gw, session.NewStore(gw), WithClock(time.Now))

	registry := NewRegistry()
	require.NoError(t, registry.RegisterAll(Catalog(handlers)))

	want := []string{
		"get_login_url",
		"generate_access_token",
		"set_access_token",
		"get_profile",
		"get_holdings",
		"get_positions",
		"get_orders",
		"get_quote",
		"get_ltp",
		"buy_stock",
		"sell_stock",
		"cancel_order",
		"get_margins",
		"get_market_status",
		"get_order_history",
	}
	assert.Equal(t, len(want), registry.Len())

	seen := map[string]Descriptor{}
	for _, descriptor := range registry.Descriptors() {
		seen[descriptor.Name] = descriptor
	}
	for _, name := range want {
		descriptor, ok := seen[name]
		require.True(t, ok, "missing tool %s", name)
		assert.NotEmpty(t, descriptor.Description, name)
		assert.Equal(t, "object", descriptor.InputSchema["type"], name)
	}
}

func TestCatalog_RequiredArguments(t *testing.T) {
	gw := &mockGateway{}
	handlers := NewHandlers(gw, session.NewStore(gw))

	registry := NewRegistry()
	require.NoError(t, registry.RegisterAll(Catalog(handlers)))

	required := map[string][]string{
		"generate_access_token": {"request_token"},
		"set_access_token":      {"token"},
		"get_quote":             {"symbol"},
		"get_ltp":               {"symbols"},
		"buy_stock":             {"symbol", "quantity", "price"},
		"sell_stock":            {"symbol", "quantity", "price"},
		"cancel_order":          {"order_id"},
		"get_order_history":     {"order_id"},
	}

	for _, descriptor := range registry.Descriptors() {
		want, hasRequired := required[descriptor.Name]
		got, listed := descriptor.InputSchema["required"]
		if !hasRequired {
			assert.False(t, listed, "%s should have no required args", descriptor.Name)
			continue
		}
		assert.ElementsMatch(t, want, got, descriptor.Name)
	}
}
