package cards

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cardzen/internal/api"
	"cardzen/internal/database"
	"cardzen/internal/handler"
	"cardzen/internal/middleware"
	"cardzen/internal/model"
	"cardzen/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createCard  = store.CreateCard
	listCards   = store.ListCards
	getCardByID = store.GetCardByID
	updateCard  = store.UpdateCard
	deleteCard  = store.DeleteCard
)

var errNotOwner = errors.New("caller does not own the card")

// @Summary     Create a card
// @Description 建立一張屬於目前使用者的卡片，price 可為 0 但不可為負數
// @Tags        cards
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateCardRequest true "卡片資料"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /cards [post]
func CreateCardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCardRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body"})
		}
		if err := c.Validate(&req); err != nil || req.Price == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "All fields are required"})
		}
		if req.Price.IsNegative() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "price must be non-negative"})
		}

		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token required"})
		}

		err := db.Write(c.Request().Context(), func(ctx context.Context) error {
			_, err := createCard(ctx, db, &model.Card{
				UserID:      claims.UserID,
				Name:        req.Name,
				Description: req.Description,
				Price:       *req.Price,
			})
			return err
		})
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "Card created successfully"})
	}
}

// @Summary     List cards
// @Description 回傳所有卡片，沒有資料時回傳空陣列
// @Tags        cards
// @Produce     json
// @Success     200 {array}  model.Card
// @Failure     500 {object} api.ErrorResponse
// @Router      /cards [get]
func ListCardsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cards, err := listCards(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, cards)
	}
}

// @Summary     Get a card by ID
// @Tags        cards
// @Produce     json
// @Param       id  path     int true "卡片 ID"
// @Success     200 {object} model.Card
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     404 {object} api.ErrorResponse "卡片不存在"
// @Failure     500 {object} api.ErrorResponse "伺服器錯誤"
// @Router      /cards/{id} [get]
func GetCardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseIDParam(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid card ID"})
		}
		card, err := getCardByID(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Card not found"})
		}
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, card)
	}
}

// @Summary     Update a card
// @Description 僅卡片擁有者可修改；只套用 body 中出現的欄位
// @Tags        cards
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "卡片 ID"
// @Param       body body     api.UpdateCardRequest true "要修改的欄位"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /cards/{id} [put]
func UpdateCardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseIDParam(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid card ID"})
		}

		var req api.UpdateCardRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body"})
		}
		if isBlank(req.Name) || isBlank(req.Description) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "name and description cannot be empty"})
		}
		if req.Price != nil && req.Price.IsNegative() {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "price must be non-negative"})
		}

		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token required"})
		}

		err := db.Write(c.Request().Context(), func(ctx context.Context) error {
			card, err := ownedCard(ctx, db, id, claims.UserID)
			if err != nil {
				return err
			}
			if req.Name != nil {
				card.Name = *req.Name
			}
			if req.Description != nil {
				card.Description = *req.Description
			}
			if req.Price != nil {
				card.Price = *req.Price
			}
			return updateCard(ctx, db, card)
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Card updated successfully"})
	}
}

// @Summary     Delete a card
// @Description 僅卡片擁有者可刪除；既有交易紀錄保留
// @Tags        cards
// @Produce     json
// @Param       id  path     int true "卡片 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /cards/{id} [delete]
func DeleteCardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseIDParam(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid card ID"})
		}
		claims, ok := middleware.CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Token required"})
		}

		err := db.Write(c.Request().Context(), func(ctx context.Context) error {
			if _, err := ownedCard(ctx, db, id, claims.UserID); err != nil {
				return err
			}
			return deleteCard(ctx, db, id)
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Card deleted successfully"})
	}
}

// ownedCard loads the card and checks that userID owns it.
func ownedCard(ctx context.Context, db database.Querier, id, userID int64) (*model.Card, error) {
	card, err := getCardByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if card.UserID != userID {
		return nil, errNotOwner
	}
	return card, nil
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Card not found"})
	case errors.Is(err, errNotOwner):
		return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "Not allowed"})
	default:
		return handler.InternalError(c, err)
	}
}

func isBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}
