package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/amazeing/service"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

// Authoriz rejects requests without a valid bearer token and stores the
// token's claims under ContextUserClaims.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// Username returns the username claim stored by Authoriz.
func Username(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserClaims)
	if !ok {
		return "", false
	}
	claims, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	username, ok := claims[service.ClaimUsername].(string)
	return username, ok && username != ""
}
