package api

import "cardzen/internal/model"

// swagger:model api.BuyResponse
type BuyResponse struct {
	Message string     `json:"message" example:"Purchase successful"`
	Card    model.Card `json:"card"`
}
