// Package auth guards the administrative endpoints with a bearer token whose
// bcrypt hash is kept on disk.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"serpentaware/internal/utils"
)

var (
	// ErrMissingToken is returned when the request has no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when the token does not match the hash.
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier checks admin tokens. A nil *Verifier accepts every request, which
// is how the server runs when no hash file is configured.
type Verifier struct {
	hash []byte
}

// NewVerifier wraps an existing bcrypt hash.
func NewVerifier(hash []byte) (*Verifier, error) {
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("parse token hash: %w", err)
	}
	return &Verifier{hash: hash}, nil
}

// LoadVerifier reads a hash written by HashToken. An empty path yields a nil
// Verifier.
func LoadVerifier(path string) (*Verifier, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(utils.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("read token hash: %w", err)
	}
	return NewVerifier([]byte(strings.TrimSpace(string(data))))
}

// HashToken hashes a token for storage.
func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(bytes), err
}

// Verify compares token against the stored hash.
func (v *Verifier) Verify(token string) error {
	if v == nil {
		return nil
	}
	if token == "" {
		return ErrMissingToken
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// Enabled reports whether requests are actually checked.
func (v *Verifier) Enabled() bool { return v != nil }

// ExtractTokenFromHeader extracts the token from the Authorization header.
func ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Middleware rejects requests without a valid bearer token with 401.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := v.Verify(ExtractTokenFromHeader(r)); err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="serpentaware"`)
			detail := "Invalid admin token"
			if errors.Is(err, ErrMissingToken) {
				detail = "Not authenticated"
			}
			utils.WriteDetail(w, http.StatusUnauthorized, detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}
