package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "userID"

// userClaims mirrors the token payload issued by the auth service: {"user": {"id": 42}}.
type userClaims struct {
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
	jwt.RegisteredClaims
}

// Authenticate verifies the HS256 bearer token and stores the user id in the context.
func Authenticate(secret []byte, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "Invalid authorization header format. Expected: Bearer <token>")
			return
		}

		var claims userClaims
		_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			log.DebugContext(c.Request.Context(), "Token rejected", "path", c.Request.URL.Path, "error", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		if claims.User.ID <= 0 {
			abortUnauthorized(c, "Token does not identify a user")
			return
		}

		c.Set(userIDKey, claims.User.ID)
		c.Next()
	}
}

// UserID returns the id stored by Authenticate.
func UserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(int64)

	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// RequestLogger logs every request once it has been served.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		log.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}

// Instrument records request counts and latencies per route template.
func Instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
