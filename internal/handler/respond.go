package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "storefront/internal/errors"
)

// fail converts a service error into the uniform {success:false, ...}
// envelope. Unexpected errors collapse to a non-specific 500 for the caller;
// the full detail is logged server-side.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Request().Method).Msg("request failed")
	}
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// failWith responds with an explicit status, message and code in the
// envelope, for handler-level binding and validation errors.
func failWith(c echo.Context, status int, message, code string) error {
	return c.JSON(status, apperrors.ErrorResponse{Error: message, Code: code})
}
