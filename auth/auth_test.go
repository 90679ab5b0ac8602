package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"messenger-lab/errors"
)

func Test_HashPassword_RoundTrip(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("hunter2secret")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	ok, err := ComparePassword("hunter2secret", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = ComparePassword("wrong-password", hash)
	req.NoError(err)
	req.False(ok)
}

func Test_HashPassword_SaltsDiffer(t *testing.T) {
	req := require.New(t)

	first, err := HashPassword("same-password")
	req.NoError(err)
	second, err := HashPassword("same-password")
	req.NoError(err)
	req.NotEqual(first, second)
}

func Test_ComparePassword_RejectsMalformedHash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("whatever", "not-an-encoded-hash")
	req.Error(err)
}

func Test_ValidateRegister(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{"valid", RegisterRequest{Username: "alice_01", DisplayName: "Alice", Password: "secret123"}, nil},
		{"too short", RegisterRequest{Username: "ab", DisplayName: "Alice", Password: "secret123"}, errors.ErrInvalidUsername},
		{"too long", RegisterRequest{Username: "abcdefghijklmnopqrstu", DisplayName: "Alice", Password: "secret123"}, errors.ErrInvalidUsername},
		{"forbidden characters", RegisterRequest{Username: "alice!", DisplayName: "Alice", Password: "secret123"}, errors.ErrInvalidUsername},
		{"spaces", RegisterRequest{Username: "al ice", DisplayName: "Alice", Password: "secret123"}, errors.ErrInvalidUsername},
		{"empty username", RegisterRequest{Username: "", DisplayName: "Alice", Password: "secret123"}, errors.ErrInvalidUsername},
		{"short password", RegisterRequest{Username: "alice", DisplayName: "Alice", Password: "abc"}, errors.ErrInvalidPassword},
		{"empty display name", RegisterRequest{Username: "alice", DisplayName: "", Password: "secret123"}, errors.ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateRegister(tt.req)
			if tt.want == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tt.want)
		})
	}
}

func Test_ValidateServerName(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateServerName("gophers"))
	req.ErrorIs(ValidateServerName("g"), errors.ErrInvalidServerName)
	req.ErrorIs(ValidateServerName(""), errors.ErrInvalidServerName)
}

func Test_Token_RoundTrip(t *testing.T) {
	req := require.New(t)
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "u1", time.Hour)
	req.NoError(err)

	claims, err := ValidateToken(secret, token)
	req.NoError(err)
	req.Equal("u1", claims.UserID)
	req.Equal("messenger-lab", claims.Issuer)
}

func Test_Token_RejectsWrongSecretAndExpiry(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken([]byte("right-secret"), "u1", time.Hour)
	req.NoError(err)
	_, err = ValidateToken([]byte("wrong-secret"), token)
	req.Error(err)

	expired, err := GenerateToken([]byte("right-secret"), "u1", -time.Minute)
	req.NoError(err)
	_, err = ValidateToken([]byte("right-secret"), expired)
	req.Error(err)
}
