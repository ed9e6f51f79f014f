package config

import "time"

// DefaultJWTSecret is the fallback signing secret. Validate refuses it in
// production.
const DefaultJWTSecret = "your-secret-key"

const (
	SessionTTL         = 24 * time.Hour
	RememberSessionTTL = 7 * 24 * time.Hour

	minProductionSecretLength = 32
)

// SessionLifetime returns how long a token issued at login stays valid.
func SessionLifetime(remember bool) time.Duration {
	if remember {
		return RememberSessionTTL
	}
	return SessionTTL
}

// SessionCookieName is the cookie carrying the session token. The
// Authorization header is never consulted.
const SessionCookieName = "token"
