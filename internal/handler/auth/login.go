// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"cardzen/internal/api"
	"cardzen/internal/database"
	"cardzen/internal/handler"
	"cardzen/internal/model"
	"cardzen/internal/service"
	"cardzen/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Username/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Username 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, tokens *service.TokenManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Username and password required"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Username and password required"})
		}

		ctx := c.Request().Context()
		user, err := getUserByUsername(ctx, db, req.Username)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return handler.InternalError(c, err)
		}

		// 帳號不存在與密碼錯誤回傳相同訊息
		authUser, err := authenticateUser(ctx, user, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid username or password"})
		}

		token, expiresAt, err := tokens.Issue(*authUser)
		if err != nil {
			return handler.InternalError(c, err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Message:   "Login successful",
			Token:     token,
			ExpiresAt: expiresAt,
			User:      userResponse(authUser),
		})
	}
}

func userResponse(u *model.User) api.UserResponse {
	return api.UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
