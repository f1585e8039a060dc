package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=16 will result in a 32-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewInvitationCode returns a one-time code and the bcrypt hash to persist in its place.
func NewInvitationCode() (code string, hash string, err error) {
	code, err = GenerateSecureRandomString(16)
	if err != nil {
		return "", "", err
	}
	hash, err = HashSecret(code)
	if err != nil {
		return "", "", err
	}
	return code, hash, nil
}

// HashSecret bcrypt-hashes a secret for storage.
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

// CheckSecretHash compares a plaintext secret with a bcrypt hash.
func CheckSecretHash(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
