package handler

import (
	"net/http"

	"cardzen/internal/api"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// InternalError logs err on the request logger and answers 500 without the cause.
func InternalError(c echo.Context, err error) error {
	zerolog.Ctx(c.Request().Context()).Error().
		Err(err).
		Str("route", c.Path()).
		Msg("internal error")
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Internal server error"})
}
