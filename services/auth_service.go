package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"blog-cms/models"
	"blog-cms/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
	Remember  bool
}

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	log      *slog.Logger

	// dummyHash is compared against when the username is unknown so that a
	// miss costs the same bcrypt work as a wrong password.
	dummyHash func() []byte
}

// NewAuthService builds the login service. cost is the bcrypt cost stored
// passwords are hashed with; an out of range cost falls back to the default.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, cost int, log *slog.Logger) AuthService {
	if log == nil {
		log = slog.Default()
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
		dummyHash: sync.OnceValue(func() []byte {
			hash, _ := bcrypt.GenerateFromPassword([]byte("blog-cms/no-such-user"), cost)
			return hash
		}),
	}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(req.Password))
			return nil, models.ErrInvalidCredentials
		}
		s.log.Error("failed to look up user", "error", err)
		return nil, models.NewInternalError("login failed, please try again later", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, req.Remember)
	if err != nil {
		s.log.Error("failed to sign session token", "error", err)
		return nil, models.NewInternalError("login failed, please try again later", err)
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		Remember:  req.Remember,
	}, nil
}
