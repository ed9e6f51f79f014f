package services

import (
	"errors"
	"time"

	"blog-cms/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens. It holds no per-session
// state: a token stays valid until it expires, whatever happens server side.
type TokenService struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService returns a service signing with secret. now defaults to
// time.Now.
func NewTokenService(secret string, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret: []byte(secret),
		now:    now,
		// expiry is checked against s.now in Verify rather than jwt's global clock
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Issue signs a token for the user, valid for one day or, with remember,
// seven days.
func (s *TokenService) Issue(userID, username string, remember bool) (string, time.Time, error) {
	now := s.now()
	claims := SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.SessionLifetime(remember))),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks the signature and expiry of tokenString. It does no I/O.
func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	claims := &SessionClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	if !claims.VerifyExpiresAt(s.now(), true) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
