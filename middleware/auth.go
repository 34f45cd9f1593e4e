package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
)

// AddressKey holds the authenticated wallet address on the gin context.
const AddressKey = "addr"

// TokenVerifier checks a bearer token and returns the wallet address it was issued to.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[len("Bearer "):])
	return token, token != ""
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			_ = c.Error(models.UnauthorizedError(errors.New("missing bearer token")))
			c.Abort()
			return
		}
		addr, err := verifier.VerifyToken(token)
		if err != nil {
			_ = c.Error(models.UnauthorizedError(err))
			c.Abort()
			return
		}
		c.Set(AddressKey, addr)
		c.Next()
	}
}

// RequireAuthForWrites applies RequireAuth to POST requests only.
func RequireAuthForWrites(verifier TokenVerifier) gin.HandlerFunc {
	guard := RequireAuth(verifier)
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}
		guard(c)
	}
}
