package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/pkg/jwt"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("superuser", claims.Superuser)

		c.Next()
	}
}

// OptionalJWTAuth populates user context when a valid token is present but
// lets anonymous requests through. Public read endpoints use this.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := jwtManager.VerifyToken(parts[1]); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("username", claims.Username)
				c.Set("superuser", claims.Superuser)
			}
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from context. Zero means
// anonymous.
func GetUserID(c *gin.Context) uint64 {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}
	if id, ok := userID.(uint64); ok {
		return id
	}
	return 0
}

// GetUsername extracts the authenticated username from context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	if str, ok := username.(string); ok {
		return str
	}
	return ""
}

// IsSuperuser reports whether the authenticated user is a superuser
func IsSuperuser(c *gin.Context) bool {
	superuser, exists := c.Get("superuser")
	if !exists {
		return false
	}
	if b, ok := superuser.(bool); ok {
		return b
	}
	return false
}

// RequireSuperuser rejects non-superusers. Must run after JWTAuth.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsSuperuser(c) {
			common.ErrorResponse(c, 403, "Superuser access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
