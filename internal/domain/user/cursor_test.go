package user

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	ids := []int64{0, 1, 20, 99999, 9223372036854775807}

	for _, id := range ids {
		token := Cursor{LastID: id}.Encode()

		got, err := ParseCursor(token)
		require.NoError(t, err)
		assert.Equal(t, id, got.LastID)
	}
}

func TestCursor_EncodeIsURLSafe(t *testing.T) {
	for id := int64(0); id < 5000; id++ {
		token := Cursor{LastID: id}.Encode()
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")
	}
}

func TestParseCursor_AcceptsLegacyPaddedTokens(t *testing.T) {
	// base64("20") as issued by the legacy service
	legacy := base64.StdEncoding.EncodeToString([]byte("20"))
	assert.Equal(t, "MjA=", legacy)

	got, err := ParseCursor(legacy)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.LastID)
}

func TestParseCursor_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "blank", token: "   "},
		{name: "not base64", token: "!!!"},
		{name: "base64 of text", token: base64.RawURLEncoding.EncodeToString([]byte("abc"))},
		{name: "base64 of negative", token: base64.RawURLEncoding.EncodeToString([]byte("-5"))},
		{name: "base64 of signed", token: base64.RawURLEncoding.EncodeToString([]byte("+5"))},
		{name: "base64 of float", token: base64.RawURLEncoding.EncodeToString([]byte("1.5"))},
		{name: "base64 of overflow", token: base64.RawURLEncoding.EncodeToString([]byte("99999999999999999999"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCursor(tt.token)
			assert.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}
