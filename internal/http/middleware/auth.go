// README: Auth middleware (no-op placeholder).
package middleware

import "github.com/gin-gonic/gin"

// Auth is a pass-through; requests are not authenticated yet. The hook is
// registered so adding a verifier later does not change the router shape.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
