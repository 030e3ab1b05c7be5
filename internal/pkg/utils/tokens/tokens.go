// Package tokens mints and parses operator bearer tokens of the form
// <prefix><secret>.
package tokens

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

const secretBytes = 32

// Generate returns a fresh token and its secret part.
func Generate(prefix string) (raw, secret string, err error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	secret = base64.RawURLEncoding.EncodeToString(b)
	return prefix + secret, secret, nil
}

// ParseToken strips prefix from raw. ok is false when the prefix is missing
// or nothing follows it.
func ParseToken(raw, prefix string) (secret string, ok bool) {
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	secret = strings.TrimPrefix(raw, prefix)
	return secret, secret != ""
}

// FromAuthorization extracts the token from an "Authorization: Bearer" value.
func FromAuthorization(header string) (string, bool) {
	scheme, tok, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// HMAC256Hex is the indexed lookup key for a secret (64 hex chars).
func HMAC256Hex(pepper, secret string) string {
	m := hmac.New(sha256.New, []byte(pepper))
	m.Write([]byte(secret))
	return hex.EncodeToString(m.Sum(nil))
}
