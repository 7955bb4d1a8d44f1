package middleware

import (
	"strings"

	"warrantydesk/models"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionMiddleware builds the explicit per-request Session from the incoming
// Authorization header and the identity headers the gateway sets. The token
// is never validated here (the backends own authentication); it is carried so
// collaborator calls can forward it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := models.Session{
			UserID: c.GetHeader("X-User-Id"),
			Role:   c.GetHeader("X-User-Role"),
		}
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			sess.Token = strings.TrimPrefix(auth, "Bearer ")
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// SessionFrom extracts the Session placed by SessionMiddleware. A missing
// session yields the zero value: anonymous, no token forwarded.
func SessionFrom(c *gin.Context) models.Session {
	if v, exists := c.Get(sessionContextKey); exists {
		if sess, ok := v.(models.Session); ok {
			return sess
		}
	}
	return models.Session{}
}
