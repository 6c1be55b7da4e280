package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// ParseIDParam reads a numeric path parameter.
func ParseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
