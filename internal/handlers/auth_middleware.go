package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/auth"
	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/services"
)

const (
	contextUserKey   = "user"
	contextUserIDKey = "user_id"
	contextRoleKey   = "user_role"
)

// JWTAuthMiddleware authenticates requests with the service's own
// bearer tokens and loads the account behind them.
type JWTAuthMiddleware struct {
	tokens      *auth.TokenManager
	authService services.AuthService
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager, authService services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens, authService: authService}
}

// AuthMiddleware returns a Gin middleware that requires a valid token.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "authorization header missing or malformed", nil))
			c.Abort()
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", fmt.Sprintf("invalid token: %v", err), nil))
			c.Abort()
			return
		}

		user, err := m.authService.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "account no longer exists", nil))
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextUserIDKey, user.ID)
		c.Set(contextRoleKey, user.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware loads the user when a valid token is present
// and continues anonymously otherwise.
func (m *JWTAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		if user, err := m.authService.GetUser(c.Request.Context(), claims.Subject); err == nil {
			c.Set(contextUserKey, user)
			c.Set(contextUserIDKey, user.ID)
			c.Set(contextRoleKey, user.Role)
		}

		c.Next()
	}
}

// RequireRoleMiddleware checks if user has required role. Admins pass
// every role gate.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(contextRoleKey)
		if !exists {
			c.JSON(http.StatusForbidden, errorJSON("forbidden", "user role not found in context", nil))
			c.Abort()
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.JSON(http.StatusForbidden, errorJSON("forbidden", "invalid user role format", nil))
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole || role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, errorJSON("forbidden", fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles), nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
