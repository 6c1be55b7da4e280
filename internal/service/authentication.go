// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cardzen/internal/cache"
	"cardzen/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	newTokenID      = func() string { return uuid.NewString() }
)

// ErrInvalidToken 表示簽章、格式或效期驗證失敗
var ErrInvalidToken = errors.New("invalid or expired token")

const revokedKeyPrefix = "cardzen:revoked:"

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager 以 HMAC-SHA256 簽發與驗證 access token
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue 依據使用者資訊產生 JWT，並回傳到期時間
func (m *TokenManager) Issue(user model.User) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret not set")
	}

	now := timeNow()
	exp := now.Add(m.ttl)
	claims := CustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify 驗證並解析 JWT 令牌，任何失敗都回傳 ErrInvalidToken
func (m *TokenManager) Verify(tokenString string) (*CustomClaims, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(timeNow),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RevokeToken 將 jti 寫入撤銷清單，保留到 token 原本的到期時間
func RevokeToken(ctx context.Context, c cache.Cache, claims *CustomClaims) error {
	if claims.ID == "" {
		return errors.New("token has no id")
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(timeNow())
	}
	if ttl <= 0 {
		return nil
	}
	return c.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err()
}

// IsTokenRevoked 查詢 jti 是否在撤銷清單中
func IsTokenRevoked(ctx context.Context, c cache.Cache, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	err := c.Get(ctx, revokedKeyPrefix+jti).Err()
	if cache.IsMiss(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
