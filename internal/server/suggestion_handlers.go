package server

import (
	"errors"
	"net/http"

	"fitsuggest/internal/suggestion"
	"fitsuggest/internal/utility"
	"github.com/labstack/echo/v4"
)

const (
	errUserNotFound     = "User not found"
	errGenerateFailed   = "Failed to process data or generate suggestion"
	errInvalidRequest   = "Invalid request format"
	errNoSuggestion     = "No suggestion found"
	errFetchSuggestions = "Failed to fetch suggestion"
)

// GenerateSuggestionRequest is the body of POST /generate-suggestion.
type GenerateSuggestionRequest struct {
	Username string `json:"username"`
	Question string `json:"question"`
}

// GenerateSuggestionHandler runs the suggestion pipeline for one user.
// Both an unknown user and internal failures answer 500; only the
// message differs, and internal causes are logged, never returned.
func (s *Server) GenerateSuggestionHandler(c echo.Context) error {
	logger := utility.GetLogger(c)

	var req GenerateSuggestionRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn().Err(err).Msg("Failed to bind request body")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": errInvalidRequest})
	}

	result, err := s.suggester.Generate(c.Request().Context(), req.Username, req.Question)
	if errors.Is(err, suggestion.ErrUserNotFound) {
		logger.Info().Str("username", req.Username).Msg("Suggestion requested for unknown user")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": errUserNotFound})
	}
	if err != nil {
		logger.Error().Err(err).Str("username", req.Username).Msg("Error fetching user data or generating suggestion")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": errGenerateFailed})
	}

	return c.JSON(http.StatusOK, result)
}

// GetLatestSuggestionHandler returns the user's live suggestion.
func (s *Server) GetLatestSuggestionHandler(c echo.Context) error {
	logger := utility.GetLogger(c)
	username := c.Param("username")

	stored, err := s.suggester.Latest(c.Request().Context(), username)
	switch {
	case errors.Is(err, suggestion.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": errUserNotFound})
	case errors.Is(err, suggestion.ErrNoSuggestion):
		return c.JSON(http.StatusNotFound, map[string]string{"error": errNoSuggestion})
	case err != nil:
		logger.Error().Err(err).Str("username", username).Msg("Failed to fetch latest suggestion")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": errFetchSuggestions})
	}

	return c.JSON(http.StatusOK, stored)
}
