package middleware

import (
	"fmt"
	"strings"

	"super-app-media/controller/respond"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey context key under which the authenticated uploader id is stored
const UserIDKey = "user_id"

// RequireAuth verify the Bearer token and inject the uploader identity.
// Token issuance lives in an external auth service; this only verifies the
// HMAC signature and extracts the subject claim.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respond.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			respond.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respond.Unauthorized(c, "invalid token claims")
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			respond.Unauthorized(c, "token has no subject")
			c.Abort()
			return
		}

		c.Set(UserIDKey, sub)
		c.Next()
	}
}

// AuthenticatedUser read the uploader id injected by RequireAuth
func AuthenticatedUser(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
