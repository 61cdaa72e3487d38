package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/service"
)

const sessionKey = "session"

// bearerToken extracts the token from the Authorization header. Both
// "Bearer <token>" and a bare token are accepted.
func bearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))

	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}

	return auth
}

// AuthMiddleware creates middleware that validates bearer tokens
func AuthMiddleware(authService *service.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := authService.ValidateToken(c.Request.Context(), bearerToken(c))
		if err != nil {
			respondError(c, logger, "Session", err)
			return
		}

		c.Set(sessionKey, session)

		c.Next()
	}
}

// RequireKind rejects sessions issued for another kind of record. It must
// run after AuthMiddleware.
func RequireKind(kind core.Kind, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok || session.Kind != kind {
			respondError(c, logger, "Session", core.ErrInvalidToken)
			return
		}

		c.Next()
	}
}

func sessionFrom(c *gin.Context) (*core.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*core.Session)

	return session, ok
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
