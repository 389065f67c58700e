package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

const testSecret = "test-secret-please-rotate"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseRoundTrip(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, Claims{
		Name:  "Ahmed Khan",
		Email: "ahmed@example.com",
		Phone: "+44123",
		Role:  "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	u, err := NewVerifier(testSecret).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
	assert.Equal(t, "Ahmed Khan", u.Name)
	assert.Equal(t, "ahmed@example.com", u.Email)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.False(t, u.IsAdmin())
}

func TestParseAdminRole(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	u, err := NewVerifier(testSecret).Parse(token)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

// Unknown roles come out as plain customers, never admins.
func TestParseUnknownRoleDowngraded(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	u, err := NewVerifier(testSecret).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.Role)
}

func TestParseRejects(t *testing.T) {
	v := NewVerifier(testSecret)

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.New().String()},
		})
		_, err := v.Parse(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		token := signToken(t, testSecret, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.New().String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		_, err := v.Parse(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("subject not a uuid", func(t *testing.T) {
		token := signToken(t, testSecret, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		_, err := v.Parse(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Parse("not.a.token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestUserContext(t *testing.T) {
	u := domain.User{ID: uuid.New(), Role: domain.RoleAdmin}
	ctx := WithUser(context.Background(), u)

	got, ok := UserFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, u, got)

	_, ok = UserFrom(context.Background())
	assert.False(t, ok)
}
