package auth

import (
	"net/http"

	"cardzen/internal/api"
	"cardzen/internal/cache"
	"cardzen/internal/handler"
	"cardzen/internal/middleware"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 撤銷目前的 token 直到其原本的到期時間
// @Summary     Logout
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /logout [post]
func LogoutHandler(cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token required"})
		}
		if err := revokeToken(c.Request().Context(), cch, claims); err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
	}
}
