package handlers

import (
	"errors"
	"net/http"

	"blog-cms/config"
	"blog-cms/helper"
	"blog-cms/metrics"
	"blog-cms/models"
	"blog-cms/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   services.AuthService
	Helper        *helper.HTTPHelper
	secureCookies bool
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h, secureCookies: secureCookies}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecordLogin(metrics.LoginRejected)
		h.Helper.SendBadRequest(c, "invalid request body")
		return
	}
	if err := h.Helper.ValidateStruct(req); err != nil {
		metrics.RecordLogin(metrics.LoginRejected)
		h.Helper.SendError(c, models.NewValidationError("username and password are required"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials):
			metrics.RecordLogin(metrics.LoginRejected)
			h.Helper.SendUnauthorizedError(c, models.ErrInvalidCredentials.Error(), helper.CodeTypeUnauthorized)
		case h.Helper.GetStatusCode(err) == http.StatusBadRequest:
			metrics.RecordLogin(metrics.LoginRejected)
			h.Helper.SendError(c, err)
		default:
			metrics.RecordLogin(metrics.LoginError)
			h.Helper.SendError(c, err)
		}
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	h.setSessionCookie(c, result.Token, int(config.SessionLifetime(result.Remember).Seconds()))
	h.Helper.SendSuccess(c, "login successful", models.LoginData{
		ID:       result.User.ID,
		Username: result.User.Username,
		Remember: result.Remember,
	})
}

// Logout expires the session cookie. The token itself stays valid until its
// exp; there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	h.Helper.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(config.SessionCookieName, value, maxAge, "/", "", h.secureCookies, true)
}
