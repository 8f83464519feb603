package auth

import (
	"qa-board/errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "correct horse 42"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong horse 42", hash)
	req.NoError(err)
	req.False(match)
}

func TestHash_Is_Salted(t *testing.T) {
	req := require.New(t)
	first, err := HashPassword("same-pass-1")
	req.NoError(err)
	second, err := HashPassword("same-pass-1")
	req.NoError(err)
	req.NotEqual(first, second)
}

func TestComparePassword_Malformed(t *testing.T) {
	req := require.New(t)
	for _, encoded := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$m=x$a$b"} {
		_, err := ComparePassword("whatever1", encoded)
		req.ErrorIs(err, errors.ErrInvalidHash, encoded)
	}
}

func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{"Valid request", RegisterRequest{"alice", "alice@example.com", "secret123"}, nil},
		{"Invalid email", RegisterRequest{"alice", "notanemail", "secret123"}, errors.ErrInvalidRegistration},
		{"Username too short", RegisterRequest{"al", "alice@example.com", "secret123"}, errors.ErrInvalidRegistration},
		{"Password too short", RegisterRequest{"alice", "alice@example.com", "abc12"}, errors.ErrInvalidRegistration},
		{"Password too long", RegisterRequest{"alice", "alice@example.com", strings.Repeat("a1", 37)}, errors.ErrInvalidRegistration},
		{"Missing digit", RegisterRequest{"alice", "alice@example.com", "onlyletters"}, errors.ErrInvalidPassword},
		{"Missing letter", RegisterRequest{"alice", "alice@example.com", "1234567890"}, errors.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := ValidateRegister(tt.req)
			if tt.wantErr == nil {
				req.NoError(err)
				return
			}
			req.ErrorIs(err, tt.wantErr)
		})
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	req := require.New(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer("test-secret", time.Hour, clock)

	token, err := issuer.Issue("user-1", []string{"user"})
	req.NoError(err)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("user-1", claims.Subject)
	req.Equal([]string{"user"}, claims.Roles)
}

func TestTokenIssuer_Expired(t *testing.T) {
	req := require.New(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer("test-secret", time.Hour, clock)

	token, err := issuer.Issue("user-1", nil)
	req.NoError(err)

	// When the clock moves past the expiry
	clock.Advance(2 * time.Hour)

	_, err = issuer.Validate(token)
	req.ErrorIs(err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_Wrong_Secret(t *testing.T) {
	req := require.New(t)
	clock := clockwork.NewFakeClock()
	token, err := NewTokenIssuer("one", time.Hour, clock).Issue("user-1", nil)
	req.NoError(err)

	_, err = NewTokenIssuer("two", time.Hour, clock).Validate(token)
	req.ErrorIs(err, jwt.ErrTokenSignatureInvalid)
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("a-long-password-for-bench-123")
	}
}
