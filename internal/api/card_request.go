package api

import "github.com/shopspring/decimal"

// Price is a pointer so an explicit 0 is distinguishable from a missing field.
// swagger:model api.CreateCardRequest
type CreateCardRequest struct {
	Name        string           `json:"name" validate:"required" example:"Holo"`
	Description string           `json:"description" validate:"required" example:"First edition holographic"`
	Price       *decimal.Decimal `json:"price" validate:"required" swaggertype:"number" example:"9.99"`
}

// Only the fields present in the body are applied.
// swagger:model api.UpdateCardRequest
type UpdateCardRequest struct {
	Name        *string          `json:"name" example:"Holo"`
	Description *string          `json:"description" example:"Reprint"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number" example:"12.5"`
}
