package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog-cms/models"
	"blog-cms/repositories"
	"blog-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type brokenUserRepo struct{}

func (brokenUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, errors.New("db down")
}

func newAuthService(t *testing.T) (AuthService, *TokenService, *fakeClock) {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "admin", "password123")

	clock := newTestClock()
	tokens := NewTokenService("test-secret", clock.Now)
	return NewAuthService(repositories.NewUserRepository(db), tokens, bcrypt.MinCost, nil), tokens, clock
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens, clock := newAuthService(t)

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", result.User.Username)
	assert.False(t, result.Remember)
	assert.Equal(t, clock.now.Add(24*time.Hour), result.ExpiresAt)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestAuthService_LoginRemember(t *testing.T) {
	svc, _, clock := newAuthService(t)

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "password123", Remember: true})
	require.NoError(t, err)
	assert.True(t, result.Remember)
	assert.Equal(t, clock.now.Add(7*24*time.Hour), result.ExpiresAt)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, unknownUser := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "password123"})
	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "wrong"})

	assert.ErrorIs(t, unknownUser, models.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassword, models.ErrInvalidCredentials)
	assert.Equal(t, unknownUser.Error(), wrongPassword.Error())
}

func TestAuthService_LoginUsernameIsExact(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ADMIN", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_LoginMissingFields(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin"})
	var validationErr models.ErrorValidation
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "username and password are required", validationErr.Message)
}

func TestAuthService_LoginStoreFailure(t *testing.T) {
	svc := NewAuthService(brokenUserRepo{}, NewTokenService("test-secret", nil), bcrypt.MinCost, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "password123"})
	var internal models.ErrorInternalServer
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "login failed, please try again later", internal.Message)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_DummyHashUsesConfiguredCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"configured", bcrypt.MinCost + 1, bcrypt.MinCost + 1},
		{"minimum", bcrypt.MinCost, bcrypt.MinCost},
		{"out of range", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(brokenUserRepo{}, NewTokenService("test-secret", nil), tt.cost, nil).(*authService)

			cost, err := bcrypt.Cost(svc.dummyHash())
			require.NoError(t, err)
			assert.Equal(t, tt.want, cost)
		})
	}
}
