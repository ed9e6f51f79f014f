package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestTokenService_RoundTrip(t *testing.T) {
	clock := newTestClock()
	svc := NewTokenService("test-secret", clock.Now)

	token, expiresAt, err := svc.Issue("user-1", "admin", false)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(24*time.Hour), expiresAt)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenService_Expiry(t *testing.T) {
	tests := []struct {
		name     string
		remember bool
		lifetime time.Duration
	}{
		{"one day session", false, 24 * time.Hour},
		{"remembered session", true, 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newTestClock()
			svc := NewTokenService("test-secret", clock.Now)

			token, expiresAt, err := svc.Issue("user-1", "admin", tt.remember)
			require.NoError(t, err)
			assert.Equal(t, clock.now.Add(tt.lifetime), expiresAt)

			clock.Advance(tt.lifetime - time.Second)
			_, err = svc.Verify(token)
			assert.NoError(t, err)

			clock.Advance(2 * time.Second)
			_, err = svc.Verify(token)
			assert.ErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestTokenService_RejectsTampering(t *testing.T) {
	clock := newTestClock()
	svc := NewTokenService("test-secret", clock.Now)
	token, _, err := svc.Issue("user-1", "admin", false)
	require.NoError(t, err)

	other := NewTokenService("another-secret", clock.Now)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify("")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	clock := newTestClock()
	svc := NewTokenService("test-secret", clock.Now)

	claims := SessionClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
