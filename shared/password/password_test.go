package password_test

import (
	"sitterhub/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		err      error
	}{
		{name: "valid", password: "correct-horse"},
		{name: "empty", password: "", err: password.ErrEmptyPassword},
		{name: "too short", password: "short", err: password.ErrPasswordLength},
		{name: "too long", password: strings.Repeat("a", password.MaxLength+1), err: password.ErrPasswordLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	assert.ErrorIs(t, password.Verify("wrong-horse", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("", hash), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("correct-horse", ""), password.ErrInvalidPassword)
	assert.Error(t, password.Verify("correct-horse", "not-a-bcrypt-hash"))
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("correct-horse")
	require.NoError(t, err)

	second, err := password.Hash("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
