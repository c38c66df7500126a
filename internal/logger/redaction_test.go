package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedact_TokenFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep bool
	}{
		{"access token json", `{"access_token":"AbCd1234efGh5678"}`, false},
		{"request token field", `request_token=xyz987abc`, false},
		{"api secret", `api_secret: s3cr3tv4lu3`, false},
		{"authorization header", `Authorization: token fjcyh:AbCd1234`, false},
		{"checksum", `checksum="deadbeef1234"`, false},
		{"ordinary field", `order_id=230109000000001`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Redact(tt.in)
			if tt.keep {
				assert.Equal(t, tt.in, out)
			} else {
				assert.Contains(t, out, "[REDACTED]")
				assert.NotEqual(t, tt.in, out)
			}
		})
	}
}

func TestRedactor_Writer(t *testing.T) {
	var sink bytes.Buffer
	w := NewRedactor(&sink)

	line := []byte(`{"level":"info","access_token":"AbCd1234efGh5678","message":"Access token updated"}`)
	n, err := w.Write(line)
	require.NoError(t, err)
	assert.Equal(t, len(line), n, "reports the original length")
	assert.NotContains(t, sink.String(), "AbCd1234efGh5678")
	assert.Contains(t, sink.String(), "Access token updated")
}
