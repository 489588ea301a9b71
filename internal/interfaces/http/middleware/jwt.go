package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/infrastructure/auth"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Gin context keys set once a token is accepted.
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "user_id"
	JWTRoleKey   = "role"
)

const bearerScheme = "Bearer "

// JWTMiddlewareConfig configures JWTAuthMiddlewareWithConfig.
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// CookieName is consulted before the Authorization header. Browsers on
	// the front desk carry the cookie, tills send a bearer token.
	CookieName       string
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

func (cfg JWTMiddlewareConfig) skips(path string) bool {
	if slices.Contains(cfg.SkipPaths, path) {
		return true
	}
	return slices.ContainsFunc(cfg.SkipPathPrefixes, func(prefix string) bool {
		return strings.HasPrefix(path, prefix)
	})
}

// DefaultJWTConfig leaves health probes and the API docs public.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService:       jwtService,
		CookieName:       "access_token",
		SkipPaths:        []string{"/health", "/api/v1/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig admits requests carrying a valid access token
// and stores its claims on the gin context and the request context. Anything
// else is answered 401.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if cfg.skips(c.Request.URL.Path) {
			c.Next()
			return
		}

		raw := bearerOrCookie(c, cfg.CookieName)
		if raw == "" {
			rejectToken(c, log, nil)
			return
		}
		claims, err := cfg.JWTService.ValidateAccessToken(raw)
		if err != nil {
			rejectToken(c, log, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTRoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUser(c.Request.Context(), claims.UserID, claims.Role))
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token
		}
	}
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}

// tokenFailures maps validation errors to the code and message clients see.
// Order matters: the first match wins.
var tokenFailures = []struct {
	errs    []error
	code    string
	message string
}{
	{[]error{auth.ErrExpiredToken}, dto.ErrCodeTokenExpired, "Token has expired"},
	{[]error{auth.ErrTokenNotYetValid}, dto.ErrCodeTokenInvalid, "Token is not yet valid"},
	{[]error{auth.ErrInvalidClaims, auth.ErrMissingUserID, auth.ErrMissingRole}, dto.ErrCodeTokenInvalid, "Invalid token claims"},
}

// rejectToken answers 401. A nil err means no token was presented.
func rejectToken(c *gin.Context, log *zap.Logger, err error) {
	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	if err != nil {
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
		for _, f := range tokenFailures {
			if slices.ContainsFunc(f.errs, func(target error) bool { return errors.Is(err, target) }) {
				code, message = f.code, f.message
				break
			}
		}
	}

	log.Warn("access token rejected",
		zap.String("path", c.Request.URL.Path),
		zap.String("code", code),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims returns the accepted token's claims, or nil on public routes.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetActor builds the acting user recorded on invoices and payments
func GetActor(c *gin.Context) (pos.Actor, bool) {
	claims := GetJWTClaims(c)
	if claims == nil {
		return pos.Actor{}, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return pos.Actor{}, false
	}
	return pos.Actor{
		UserID:   userID,
		Name:     claims.DisplayName(),
		Username: claims.Username,
	}, true
}
