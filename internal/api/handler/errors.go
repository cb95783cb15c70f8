package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// statusFor maps request-terminal domain errors to HTTP status codes.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrBadCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, domain.ErrBadToken),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotImplemented):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrInvalidJSON),
		errors.Is(err, domain.ErrBadAttributes):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrNotModified):
		return http.StatusNotModified, true
	}
	return 0, false
}

// respondError renders a known domain error. Anything else is returned to the
// central error handler.
func respondError(c echo.Context, err error) error {
	code, ok := statusFor(err)
	if !ok {
		return err
	}
	// 304 responses carry no body.
	if code == http.StatusNotModified {
		return c.NoContent(code)
	}
	return c.JSON(code, ErrorResponse{Status: code, Error: err.Error()})
}
