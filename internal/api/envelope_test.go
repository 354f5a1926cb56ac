package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneylover/internal/core"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantData string
		wantErr  error
	}{
		{
			name:     "numeric dialect success",
			raw:      `{"error": 0, "msg": "", "data": {"ok": true}}`,
			wantData: `{"ok": true}`,
		},
		{
			name:     "numeric dialect absent error field",
			raw:      `{"data": [1, 2]}`,
			wantData: `[1, 2]`,
		},
		{
			name:    "numeric dialect failure",
			raw:     `{"error": 404, "msg": "wallet not found"}`,
			wantErr: &APIError{Code: "404", Message: "wallet not found"},
		},
		{
			name:    "numeric dialect expired code",
			raw:     `{"error": 717, "msg": "token_device_not_found"}`,
			wantErr: ErrSessionExpired,
		},
		{
			name:    "numeric dialect expired by message",
			raw:     `{"error": 1, "msg": "token_device_not_found"}`,
			wantErr: ErrSessionExpired,
		},
		{
			name:     "string dialect success",
			raw:      `{"e": "", "message": "", "data": {"ok": 1}}`,
			wantData: `{"ok": 1}`,
		},
		{
			name:    "string dialect failure",
			raw:     `{"e": "X", "message": "bad"}`,
			wantErr: &APIError{Code: "X", Message: "bad"},
		},
		{
			name:    "string dialect expired",
			raw:     `{"e": "token_device_not_found", "message": ""}`,
			wantErr: ErrSessionExpired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := decodeEnvelope([]byte(tt.raw))
			switch want := tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantData, string(data))
			case *APIError:
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, want, apiErr)
			default:
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	_, err := decodeEnvelope([]byte(`not json at all`))
	var decodeErr *core.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
