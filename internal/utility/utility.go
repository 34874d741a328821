package utility

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Keys under which the request middleware stores its values on the echo context.
const (
	LoggerKey    = "logger"
	RequestIDKey = "request_id"
)

// GetRealIP returns the client address, preferring proxy headers.
func GetRealIP(c echo.Context) string {
	// X-Forwarded-For can be a list: "client, proxy1, proxy2"
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}

	if xRealIP := strings.TrimSpace(c.Request().Header.Get("X-Real-IP")); xRealIP != "" {
		return xRealIP
	}

	return c.RealIP()
}

// GetLogger returns the request-scoped logger, or the global one.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return &log.Logger
}

// GetRequestID returns the id assigned to the current request, if any.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
