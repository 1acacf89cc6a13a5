package middlewares

import (
	"net/http"
	"strings"

	"dispatchboard/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the Bearer token on operator routes. Websocket
// handshakes may carry the token as a query parameter instead.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		} else if t := c.Query("token"); t != "" {
			tokenStr = t
		}

		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("operatorId", claims.OperatorID)
		c.Next()
	}
}
