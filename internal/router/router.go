// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"cardzen/internal/cache"
	"cardzen/internal/database"
	"cardzen/internal/handler"
	"cardzen/internal/handler/auth"
	"cardzen/internal/handler/cards"
	"cardzen/internal/handler/purchases"
	"cardzen/internal/middleware"
	"cardzen/internal/service"
)

// Setup 註冊所有路由與中介層
// authLimiter 只套用在 /register 與 /login
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, tokens *service.TokenManager, authLimiter echo.MiddlewareFunc) {
	requireAuth := middleware.RequireAuth(tokens, cch)

	// 健康檢查
	e.GET("/", handler.RootHandler())
	e.GET("/ping", handler.PingHandler(db, cch))

	// 註冊、登入、登出
	e.POST("/register", auth.RegisterHandler(db), authLimiter)
	e.POST("/login", auth.LoginHandler(db, tokens), authLimiter)
	e.POST("/logout", auth.LogoutHandler(cch), requireAuth)

	// 卡片：讀取公開，寫入需登入
	e.GET("/cards", cards.ListCardsHandler(db))
	e.GET("/cards/:id", cards.GetCardHandler(db))
	e.POST("/cards", cards.CreateCardHandler(db), requireAuth)
	e.PUT("/cards/:id", cards.UpdateCardHandler(db), requireAuth)
	e.DELETE("/cards/:id", cards.DeleteCardHandler(db), requireAuth)

	// 購買與交易紀錄
	e.POST("/buy/:cardId", purchases.BuyCardHandler(db), requireAuth)
	e.GET("/transactions", purchases.ListTransactionsHandler(db), requireAuth)
}
