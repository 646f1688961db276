package httpx

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/auth"
)

const (
	ridKey    = "rid"
	userIDKey = "uid"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"rid":    c.GetString(ridKey),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
			"dur":    time.Since(start).String(),
		}).Info("http request")
	}
}

// RequireAuth resolves the bearer token to a user id or aborts with 401.
func RequireAuth(v auth.Verifier, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			WriteError(c, log, apperr.Authentication("missing bearer token"))
			c.Abort()
			return
		}
		uid, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			WriteError(c, log, err)
			c.Abort()
			return
		}
		c.Set(userIDKey, uid)
		c.Next()
	}
}

// RequireAdminKey guards operational endpoints. An empty key disables the check.
func RequireAdminKey(key string, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			WriteError(c, log, apperr.Authorization("admin key required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the id set by RequireAuth.
func UserID(c *gin.Context) string { return c.GetString(userIDKey) }

func RequestIDOf(c *gin.Context) string { return c.GetString(ridKey) }
