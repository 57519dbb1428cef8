package middleware

import (
	"net/http"
	"strings"

	"staffhub/internal/service"
	"staffhub/internal/token"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is the cookie carrying the short-lived access token.
const AccessTokenCookie = "accessToken"

// SessionMiddleware guards protected routes. A missing token is rejected
// with 401 (never logged in); a token that fails verification is rejected
// with 403 (session invalid) so clients can tell the two apart. On success
// the decoded claim rides the request context.
func SessionMiddleware(accessSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(AccessTokenCookie)

		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied, no token provided"})
			return
		}

		claims, err := token.Verify(tokenString, accessSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid access token"})
			return
		}

		ctx := service.WithOperator(c.Request.Context(), &service.OperatorInfo{
			Username: claims.Username,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
