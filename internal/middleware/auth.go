package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Auth guards the tool surface with a shared bearer token. Only the bcrypt
// hash of the token lives in configuration; an empty hash disables the
// check for local development.
type Auth struct {
	tokenHash []byte
}

func NewAuth(tokenHash string) *Auth {
	return &Auth{tokenHash: []byte(tokenHash)}
}

func (a *Auth) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(a.tokenHash) == 0 {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "missing bearer token",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword(a.tokenHash, []byte(token)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid bearer token",
			})
			return
		}
		c.Next()
	}
}
