package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/auth"
	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/pkg/apperrors"
)

// AuthMiddleware validates bearer tokens and enforces role gates.
type AuthMiddleware struct {
	tokens        *auth.TokenManager
	blacklistRepo repositories.TokenBlacklistRepository
}

func NewAuthMiddleware(tokens *auth.TokenManager, blacklistRepo repositories.TokenBlacklistRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, blacklistRepo: blacklistRepo}
}

func (m *AuthMiddleware) claimsFromRequest(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apperrors.NewUnauthorizedError("Authentification requise.")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorizedError("Authentification requise.")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, err
	}

	revoked, err := m.blacklistRepo.IsBlacklisted(claims.ID)
	if err != nil {
		logger.Error("failed to check token blacklist", "error", err)
		return nil, apperrors.InternalError(err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

// RequireAuth populates userID, userRole and tokenClaims in the gin
// context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.claimsFromRequest(c)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("tokenClaims", claims)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole")
		if !exists {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentification requise."))
			c.Abort()
			return
		}

		role, _ := roleVal.(models.UserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apperrors.HandleError(c, apperrors.NewForbiddenError("Accès refusé."))
		c.Abort()
	}
}

// OptionalAuth sets the user context when a valid token is present but
// lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := m.claimsFromRequest(c); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("userRole", claims.Role)
			}
		}
		c.Next()
	}
}
