// File: internal/handler/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"cardzen/internal/api"
	"cardzen/internal/database"
	"cardzen/internal/handler"
	"cardzen/internal/model"
	"cardzen/internal/service"
	"cardzen/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword      = service.HashPassword
	authenticateUser  = service.AuthenticateUser
	revokeToken       = service.RevokeToken
	userExists        = store.UserExists
	createUser        = store.CreateUser
	getUserByUsername = store.GetUserByUsername
)

var errUserTaken = errors.New("username or email taken")

// RegisterHandler 建立新帳號，不發行 token
// @Summary     Register a new user
// @Description 使用者名稱與 Email 不可重複 (Email 會自動轉小寫，且須為完整的 user@domain 位址)，密碼以 bcrypt 儲存，長度上限 72 bytes
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "All fields are required"})
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		hash, err := hashPassword(req.Password)
		if errors.Is(err, service.ErrPasswordTooLong) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "password must be at most 72 bytes"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}

		// 檢查與寫入在同一個 writer 任務內完成
		err = db.Write(c.Request().Context(), func(ctx context.Context) error {
			exists, err := userExists(ctx, db, req.Username, req.Email)
			if err != nil {
				return err
			}
			if exists {
				return errUserTaken
			}
			_, err = createUser(ctx, db, &model.User{
				Username:     req.Username,
				Email:        req.Email,
				PasswordHash: hash,
			})
			return err
		})
		switch {
		case errors.Is(err, errUserTaken), errors.Is(err, store.ErrAlreadyExists):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Username or email already exists"})
		case err != nil:
			return handler.InternalError(c, err)
		}

		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "User registered successfully"})
	}
}
