// Package secrets stores operator tokens as argon2id PHC strings.
package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	Time      = 2
	MemoryMB  = 16
	Threads   = 1
	KeyLen    = 32
	SaltBytes = 16
)

var (
	ErrEmptySecret       = errors.New("empty secret")
	ErrUnsupportedFormat = errors.New("unsupported hash format")
	ErrInvalidPHC        = errors.New("invalid phc")
)

// HashSecret hashes secret+pepper with a random salt.
func HashSecret(secret, pepper string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(secret+pepper), salt, Time, MemoryMB*1024, Threads, KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, MemoryMB*1024, Time, Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

type phcParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func parsePHC(phc string) (*phcParams, error) {
	if !strings.HasPrefix(phc, "$argon2id$") {
		return nil, ErrUnsupportedFormat
	}
	parts := strings.Split(phc, "$")
	if len(parts) != 6 {
		return nil, ErrInvalidPHC
	}

	var m, t, p uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, fmt.Errorf("%w: params: %v", ErrInvalidPHC, err)
	}
	if p == 0 || p > 255 {
		return nil, fmt.Errorf("%w: threads %d", ErrInvalidPHC, p)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrInvalidPHC, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidPHC, err)
	}
	return &phcParams{memory: m, time: t, threads: uint8(p), salt: salt, key: key}, nil
}

// VerifySecret reports whether secret+pepper matches phc. A malformed phc is
// an error; a mismatch is not.
func VerifySecret(secret, pepper, phc string) (bool, error) {
	ps, err := parsePHC(phc)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(secret+pepper), ps.salt, ps.time, ps.memory, ps.threads, uint32(len(ps.key)))
	return subtle.ConstantTimeCompare(got, ps.key) == 1, nil
}
