package middleware

import (
	"net/http"
	"strings"

	"cardzen/internal/cache"
	"cardzen/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ContextUserKey 是 RequireAuth 存放 JWT claims 的 echo context key
const ContextUserKey = "user"

var isTokenRevoked = service.IsTokenRevoked

var (
	errTokenRequired = echo.NewHTTPError(http.StatusUnauthorized, "Token required")
	errTokenInvalid  = echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
	errInternal      = echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
)

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

func extractClaims(c echo.Context, tokens *service.TokenManager, revoked cache.Cache) (*service.CustomClaims, error) {
	tokenString, ok := bearerToken(c)
	if !ok {
		return nil, errTokenRequired
	}
	claims, err := tokens.Verify(tokenString)
	if err != nil {
		return nil, errTokenInvalid
	}
	isRevoked, err := isTokenRevoked(c.Request().Context(), revoked, claims.ID)
	if err != nil {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("revocation lookup failed")
		return nil, errInternal
	}
	if isRevoked {
		return nil, errTokenInvalid
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer token，成功後把 claims 放進 context
func RequireAuth(tokens *service.TokenManager, revoked cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, tokens, revoked)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 存放的 claims，未經驗證時 ok 為 false
func CurrentUser(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok
}
