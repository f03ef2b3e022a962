package middleware

import (
	"context"
	"net/http"
	"strings"

	"gymdesk_backend/internal/logger"
	"gymdesk_backend/pkg/apperrors"
	"gymdesk_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token and puts the external identity id
// (the token subject) on the request context. Tenant and role resolution
// happen later, in the services, from that id.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		identityID, err := parseIdentityID(tokenStr, jwtSecret)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken.WithError(err))
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), contextkeys.IdentityIDKey, identityID)
		ctx = logger.WithIdentityID(ctx, identityID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func parseIdentityID(tokenStr, secret string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}

// GetIdentityID reads the authenticated identity id off the request context.
func GetIdentityID(c *gin.Context) string {
	id, _ := c.Request.Context().Value(contextkeys.IdentityIDKey).(string)
	return id
}
