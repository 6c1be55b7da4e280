// File: internal/service/password.go
package service

import (
	"context"
	"errors"
	"sync"

	"cardzen/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 與原系統相同的 bcrypt 成本
const PasswordCost = 8

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// ErrInvalidCredentials 帳號不存在或密碼錯誤時共用
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrPasswordTooLong bcrypt 只接受 72 bytes 以內的密碼
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// AuthenticateUser 驗證密碼。user 為 nil 時仍執行一次比對，避免以回應時間判斷帳號是否存在
func AuthenticateUser(ctx context.Context, user *model.User, password string) (*model.User, error) {
	if user == nil {
		dummyOnce.Do(func() {
			dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cardzen-dummy"), PasswordCost)
		})
		_ = bcryptCompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
