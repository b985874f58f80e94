// Package crypto generates the random secrets handed to operators.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// TokenBytes is the entropy of a generated admin token.
const TokenBytes = 32

var ErrInvalidLength = errors.New("invalid length")

func generateRandomBytes(length int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

// GenerateToken returns a URL-safe random token suitable for a bearer header.
func GenerateToken() (string, error) {
	b, err := generateRandomBytes(TokenBytes)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
