package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// TokenGenerator provides cryptographically secure token generation and
// cookie-value signing.
type TokenGenerator struct {
	secret []byte
}

// NewTokenGenerator creates a token generator. The secret is only used for
// cookie signing; random generation does not depend on it.
func NewTokenGenerator(secret string) *TokenGenerator {
	return &TokenGenerator{secret: []byte(secret)}
}

// GenerateToken generates a cryptographically secure random token.
// Returns the token as a URL-safe base64 string.
func (g *TokenGenerator) GenerateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateSessionID generates an opaque session identifier (256 bits).
func (g *TokenGenerator) GenerateSessionID() (string, error) {
	return g.GenerateToken(32)
}

// GenerateState generates the CSRF state value for the OAuth redirect.
func (g *TokenGenerator) GenerateState() (string, error) {
	return g.GenerateToken(16)
}

// SignValue produces the cookie representation of an ID: "<id>.<sig>" where
// sig is HMAC-SHA256 over the ID with the session secret. A leaked or
// guessed ID is useless without the matching signature.
func (g *TokenGenerator) SignValue(id string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(id))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return id + "." + sig
}

// VerifyValue checks a signed cookie value and returns the embedded ID.
// The boolean is false for any malformed or forged value.
func (g *TokenGenerator) VerifyValue(value string) (string, bool) {
	idx := strings.LastIndexByte(value, '.')
	if idx <= 0 || idx == len(value)-1 {
		return "", false
	}

	id := value[:idx]
	if !hmac.Equal([]byte(g.SignValue(id)), []byte(value)) {
		return "", false
	}
	return id, true
}
