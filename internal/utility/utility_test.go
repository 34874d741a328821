package utility

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func newContext(headers map[string]string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:4321"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestGetRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "203.0.113.5"},
		{"real ip header", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"remote addr", nil, "10.0.0.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetRealIP(newContext(tt.headers)))
		})
	}
}

func TestGetLogger(t *testing.T) {
	c := newContext(nil)
	assert.Same(t, &log.Logger, GetLogger(c))

	scoped := zerolog.Nop()
	c.Set(LoggerKey, &scoped)
	assert.Same(t, &scoped, GetLogger(c))
}

func TestGetRequestID(t *testing.T) {
	c := newContext(nil)
	assert.Empty(t, GetRequestID(c))

	c.Set(RequestIDKey, "abc")
	assert.Equal(t, "abc", GetRequestID(c))
}
