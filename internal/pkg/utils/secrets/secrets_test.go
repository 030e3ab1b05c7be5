package secrets

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("br-s3cret", "pepper")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Equal(t, fmt.Sprintf("m=%d,t=%d,p=%d", MemoryMB*1024, Time, Threads), parts[3])

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	require.NoError(t, err)
	assert.Len(t, salt, SaltBytes)
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	require.NoError(t, err)
	assert.Len(t, key, KeyLen)

	_, err = HashSecret("", "pepper")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestHashSecret_RandomSalt(t *testing.T) {
	h1, err := HashSecret("same", "pepper")
	require.NoError(t, err)
	h2, err := HashSecret("same", "pepper")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifySecret(t *testing.T) {
	valid, err := HashSecret("operator-token", "pepper")
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		pepper  string
		phc     string
		want    bool
		wantErr error
	}{
		{name: "match", secret: "operator-token", pepper: "pepper", phc: valid, want: true},
		{name: "wrong secret", secret: "other", pepper: "pepper", phc: valid},
		{name: "wrong pepper", secret: "operator-token", pepper: "salt", phc: valid},
		{name: "bcrypt", phc: "$2a$10$abcdefghijklmnopqrstuv", wantErr: ErrUnsupportedFormat},
		{name: "too few parts", phc: "$argon2id$v=19$m=16384", wantErr: ErrInvalidPHC},
		{name: "bad params", phc: "$argon2id$v=19$bogus$c2FsdA$a2V5", wantErr: ErrInvalidPHC},
		{name: "bad salt", phc: "$argon2id$v=19$m=16384,t=2,p=1$!!$a2V5", wantErr: ErrInvalidPHC},
		{name: "zero threads", phc: "$argon2id$v=19$m=16384,t=2,p=0$c2FsdA$a2V5", wantErr: ErrInvalidPHC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifySecret(tt.secret, tt.pepper, tt.phc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerifySecret_ShortKey(t *testing.T) {
	hash, err := HashSecret("operator-token", "pepper")
	require.NoError(t, err)
	parts := strings.Split(hash, "$")
	parts[5] = base64.RawStdEncoding.EncodeToString([]byte("short"))

	ok, err := VerifySecret("operator-token", "pepper", strings.Join(parts, "$"))
	require.NoError(t, err)
	assert.False(t, ok)
}
