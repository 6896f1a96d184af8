package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mesto-server/internal/apperr"
	"mesto-server/internal/auth"
)

// principalKey is the gin context key holding the authenticated user id.
const principalKey = "principal"

// authGuard verifies the bearer token and attaches the principal to the
// request context. No downstream handler runs when verification fails; the
// response itself is written by the error normalizer.
func authGuard(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, apperr.New(apperr.Unauthorized, "not authenticated"))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.Parse(token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				abortWithError(c, apperr.Wrap(apperr.Unauthorized, "authorization error", err))
				return
			}
			abortWithError(c, err)
			return
		}

		c.Set(principalKey, userID)
		c.Next()
	}
}

func principalID(c *gin.Context) string {
	return c.GetString(principalKey)
}

// errorNormalizer is the single place error response bodies are built.
// Handlers record failures with c.Error and abort; this middleware maps the
// failure kind to its status and renders {"message": ...}. Unclassified
// errors become a generic 500 so internals never leak.
func errorNormalizer(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperr.Classify(err)
		if appErr.Kind == apperr.Internal {
			logger.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Errorf("request failed: %v", err)
		}

		if !c.Writer.Written() {
			c.JSON(appErr.Status(), gin.H{"message": appErr.Message})
		}
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// requestLogger records one line per request with outcome and latency.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}

// requestTimeout bounds store round-trips made on behalf of one request.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
