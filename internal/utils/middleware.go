package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ActiveUser is the fresh user record attached to the request after the
// token's identity has been re-checked against the store.
type ActiveUser struct {
	ID    string
	Name  string
	Email string
	Phone string
	Role  string
}

// UserFetcher re-fetches the active user behind a token. A nil user means the
// account is gone or deactivated.
type UserFetcher interface {
	FetchActiveUser(ctx context.Context, userID string) (*ActiveUser, error)
}

// AuthMiddleware enforces the bearer-token contract: 401 when the token is
// absent or its user is gone/deactivated, 403 when the signature is bad or the
// token has expired.
func AuthMiddleware(jwtUtil *JWTUtil, redis *RedisClient, users UserFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token missing"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Invalid or expired token"})
			return
		}

		if redis != nil && claims.JTI != "" {
			if redis.Exists(c.Request.Context(), "blacklist:"+claims.JTI) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token revoked"})
				return
			}
		}

		user, err := users.FetchActiveUser(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not found or inactive"})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("name", user.Name)
		c.Set("email", user.Email)
		c.Set("phone", user.Phone)
		c.Set("role", user.Role)
		c.Set("jti", claims.JTI)

		c.Next()
	}
}

// Authorize consults the policy table for (resource, action) and aborts with
// 403 when the authenticated role is not in the allowed set.
func Authorize(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}

		allowed, ok := PolicyFor(resource, action)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "No policy defined for this operation"})
			return
		}

		// nil means any authenticated role.
		if allowed == nil {
			c.Next()
			return
		}

		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Access denied. Required roles: %s", strings.Join(allowed, ", ")),
		})
	}
}
