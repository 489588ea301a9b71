package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
)

// AuthHandler exposes the caller's identity. Tokens are issued by the
// identity service; this API only reads and clears them.
type AuthHandler struct {
	BaseHandler
	cookie config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{cookie: cookie}
}

// GetCurrentUser godoc
// @Summary      Get current user
// @Description  Get the identity carried by the caller's access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=CurrentUserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp := CurrentUserResponse{
		UserID:      claims.UserID,
		Username:    claims.Username,
		DisplayName: claims.DisplayName(),
		Role:        claims.Role,
		IsAdmin:     claims.HasRole(auth.RoleAdmin),
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		resp.ExpiresAt = &exp
	}
	h.Success(c, resp)
}

// Logout godoc
// @Summary      Logout
// @Description  Clear the access token cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.AccessTokenName, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)

	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}

func sameSiteMode(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
