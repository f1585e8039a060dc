package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		Date:      time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, 5, 14, 14, 30, 45, 123456789, time.UTC),
		ID:        "3f0c9a52-item",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, cursor, decoded)

	// Current time values keep nanosecond precision.
	now := time.Now().UTC()
	decoded, err = DecodeToken(EncodeToken(Cursor{Date: now, CreatedAt: now, ID: "x"}))
	require.NoError(t, err)
	assert.True(t, now.Equal(decoded.Date))
	assert.True(t, now.Equal(decoded.CreatedAt))
}

func TestDecodeTokenError(t *testing.T) {
	encode := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	_, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, err = DecodeToken(encode("2025-05-15T00:00:00Z"))
	assert.ErrorContains(t, err, "split")

	_, err = DecodeToken(encode("2025-05-15T00:00:00Z|2025-05-15T00:00:00Z|"))
	assert.ErrorContains(t, err, "split")

	_, err = DecodeToken(encode("notadate|2025-05-15T14:30:45Z|id"))
	assert.ErrorContains(t, err, "date parse")

	_, err = DecodeToken(encode("2025-05-15T00:00:00Z|later|id"))
	assert.ErrorContains(t, err, "created_at parse")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
}
