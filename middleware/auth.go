package middleware

import (
	"errors"
	"net/http"
	"strings"

	"blog-cms/config"
	"blog-cms/helper"
	"blog-cms/metrics"
	"blog-cms/models"
	"blog-cms/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"

	LoginPagePath = "/admin/login"
)

// Access is how the gate classifies a request.
type Access int

const (
	AccessPublic Access = iota
	// AccessProtectedAPI requests are rejected with 401 without a valid token.
	AccessProtectedAPI
	// AccessProtectedPage requests are redirected to the login page without a
	// valid token.
	AccessProtectedPage
)

// Route is an allow-list entry. An empty Method matches any method. Pattern
// segments starting with ':' match exactly one non-empty path segment and a
// trailing "/*" matches any remainder.
type Route struct {
	Method  string
	Pattern string
}

// DefaultPublicRoutes is the allow-list for the blog: the reading API, the
// login endpoints and operational probes.
func DefaultPublicRoutes() []Route {
	return []Route{
		{http.MethodGet, "/"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, LoginPagePath},
		{http.MethodPost, LoginPagePath},
		{http.MethodPost, "/api/admin/login"},
		{http.MethodGet, "/api/articles"},
		{http.MethodGet, "/api/articles/count"},
		{http.MethodGet, "/api/articles/:id"},
		{http.MethodGet, "/api/tags"},
		{http.MethodGet, "/api/tags/:id"},
	}
}

type compiledRoute struct {
	method   string
	segments []string
	wildcard bool
}

// AccessGate decides, before any handler runs, whether a request may proceed.
type AccessGate struct {
	tokens *services.TokenService
	helper *helper.HTTPHelper
	public []compiledRoute
}

func NewAccessGate(tokens *services.TokenService, h *helper.HTTPHelper, public []Route) *AccessGate {
	g := &AccessGate{tokens: tokens, helper: h}
	for _, r := range public {
		pattern := normalizePath(r.Pattern)
		wildcard := false
		if strings.HasSuffix(pattern, "/*") {
			wildcard = true
			pattern = normalizePath(strings.TrimSuffix(pattern, "/*"))
		}
		g.public = append(g.public, compiledRoute{
			method:   strings.ToUpper(r.Method),
			segments: splitPath(pattern),
			wildcard: wildcard,
		})
	}
	return g
}

// Classify reports how a request for method and path is treated. Anything
// outside /api and /admin belongs to the public reading site.
func (g *AccessGate) Classify(method, path string) Access {
	path = normalizePath(path)
	if g.isPublic(strings.ToUpper(method), path) {
		return AccessPublic
	}
	switch {
	case inNamespace(path, "/api"):
		return AccessProtectedAPI
	case inNamespace(path, "/admin"):
		return AccessProtectedPage
	default:
		return AccessPublic
	}
}

// Middleware returns the gin handler enforcing the gate.
func (g *AccessGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		access := g.Classify(c.Request.Method, c.Request.URL.Path)
		if access == AccessPublic {
			metrics.RecordGateDecision(metrics.DecisionPublic)
			c.Next()
			return
		}

		token, err := c.Cookie(config.SessionCookieName)
		if err != nil || token == "" {
			g.deny(c, access, models.ErrTokenMissing)
			return
		}

		claims, err := g.tokens.Verify(token)
		if err != nil {
			g.deny(c, access, models.ErrTokenInvalid)
			return
		}

		metrics.RecordGateDecision(metrics.DecisionAllowed)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

func (g *AccessGate) deny(c *gin.Context, access Access, reason error) {
	if access == AccessProtectedPage {
		metrics.RecordGateDecision(metrics.DecisionRedirect)
		c.Redirect(http.StatusFound, LoginPagePath)
		c.Abort()
		return
	}

	if errors.Is(reason, models.ErrTokenMissing) {
		metrics.RecordGateDecision(metrics.DecisionTokenMissing)
		g.helper.SendUnauthorizedError(c, reason.Error(), helper.CodeTypeTokenMissing)
	} else {
		metrics.RecordGateDecision(metrics.DecisionTokenInvalid)
		g.helper.SendUnauthorizedError(c, reason.Error(), helper.CodeTypeTokenInvalid)
	}
	c.Abort()
}

func (g *AccessGate) isPublic(method, path string) bool {
	segments := splitPath(path)
	for _, r := range g.public {
		if r.method != "" && r.method != method && !(r.method == http.MethodGet && method == http.MethodHead) {
			continue
		}
		if matchSegments(r.segments, segments, r.wildcard) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, path []string, wildcard bool) bool {
	if wildcard {
		if len(path) < len(pattern) {
			return false
		}
	} else if len(path) != len(pattern) {
		return false
	}

	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if p != path[i] {
			return false
		}
	}
	return true
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func inNamespace(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// GetUserID returns the user id the gate stored for this request, or "".
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(ContextUserID)
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
