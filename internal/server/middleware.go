package server

import (
	"github.com/gin-gonic/gin"

	"github.com/capstore/capstore/internal/auth/session"
	"github.com/capstore/capstore/internal/usercontext"
)

const contextUserIDKey = "user_id"

// AuthRequired resolves the session cookie and injects the caller's user ID
// into the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := session.Token(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, sess.UserID.String())
		ctx := usercontext.WithUserID(c.Request.Context(), sess.UserID.Int64())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
