package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRupees(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{5, "₹5.00"},
		{999.9, "₹999.90"},
		{1000, "₹1,000.00"},
		{1500.5, "₹1,500.50"},
		{123456.789, "₹123,456.79"},
		{1234567.89, "₹1,234,567.89"},
		{-1234.5, "₹-1,234.50"},
		{999.999, "₹1,000.00"}, // rounding carries into the integer part
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rupees(tt.in), "rupees(%v)", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "15.00%", percent(15))
	assert.Equal(t, "-3.33%", percent(-3.333))
	assert.Equal(t, "0.00%", percent(0))
}

func TestRenderJSON_Deterministic(t *testing.T) {
	payload := map[string]interface{}{
		"zebra":  1,
		"alpha":  2,
		"middle": 3,
	}

	first := renderJSON(payload)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, renderJSON(payload))
	}

	// Keys come out sorted regardless of insertion order.
	assert.Less(t, strings.Index(first, "alpha"), strings.Index(first, "middle"))
	assert.Less(t, strings.Index(first, "middle"), strings.Index(first, "zebra"))
}
