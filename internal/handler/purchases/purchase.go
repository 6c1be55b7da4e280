package purchases

import (
	"context"
	"errors"
	"net/http"

	"cardzen/internal/api"
	"cardzen/internal/database"
	"cardzen/internal/handler"
	"cardzen/internal/middleware"
	"cardzen/internal/model"
	"cardzen/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getCardByID             = store.GetCardByID
	createTransaction       = store.CreateTransaction
	listTransactionsByBuyer = store.ListTransactionsByBuyer
)

// BuyCardHandler 以卡片當下價格建立交易紀錄，每次呼叫都新增一筆
// @Summary     Buy a card
// @Tags        purchases
// @Produce     json
// @Param       cardId path     int true "卡片 ID"
// @Success     201    {object} api.BuyResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     404    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /buy/{cardId} [post]
func BuyCardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cardID, ok := handler.ParseIDParam(c, "cardId")
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid card ID"})
		}
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token required"})
		}

		var card *model.Card
		err := db.Write(c.Request().Context(), func(ctx context.Context) error {
			var err error
			card, err = getCardByID(ctx, db, cardID)
			if err != nil {
				return err
			}
			_, err = createTransaction(ctx, db, &model.Transaction{
				BuyerID: claims.UserID,
				CardID:  card.ID,
				Amount:  card.Price,
			})
			return err
		})
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Card not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}

		return c.JSON(http.StatusCreated, api.BuyResponse{Message: "Purchase successful", Card: *card})
	}
}

// ListTransactionsHandler 列出目前使用者的交易，name/price 為卡片目前的值
// @Summary     List my transactions
// @Description 卡片已刪除時 name 與 price 為 null，amount 為購買當下的價格
// @Tags        purchases
// @Produce     json
// @Success     200 {array}  model.TransactionEntry
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /transactions [get]
func ListTransactionsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token required"})
		}
		entries, err := listTransactionsByBuyer(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}
