package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// the stable machine-readable category; Error the human-readable message.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes, keeping
//     distinct failures distinguishable (insufficient credits vs class full).
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the consistent JSON envelope {"error": ..., "kind": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, kind, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Kind: kind})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, string(domain.KindValidation), fmt.Sprintf("%v", he.Message)
	}

	kind := domain.KindOf(err)
	if kind != domain.KindInternal {
		return statusFor(err, kind), string(kind), err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
	return http.StatusInternalServerError, string(domain.KindInternal), "internal server error"
}

// statusFor picks the HTTP status for a classified domain error. Some
// failures within the same kind still need distinct codes; insufficient
// credits maps to 402 so clients can prompt for a credit top-up.
func statusFor(err error, kind domain.Kind) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
