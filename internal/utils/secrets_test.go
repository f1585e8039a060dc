package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := GenerateSecureRandomString(16)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestNewInvitationCode(t *testing.T) {
	code, hash, err := NewInvitationCode()
	require.NoError(t, err)

	assert.NotEqual(t, code, hash)
	assert.True(t, CheckSecretHash(code, hash))
	assert.False(t, CheckSecretHash(code+"x", hash))
}
