// File: internal/model/transaction.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a purchase record. Amount is the card price at purchase time.
type Transaction struct {
	ID        int64           `db:"id" json:"id"`
	BuyerID   int64           `db:"buyer_id" json:"buyer_id"`
	CardID    int64           `db:"card_id" json:"card_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// TransactionEntry is a transaction joined with the card's current name and
// price. Name and Price are null once the card has been deleted.
type TransactionEntry struct {
	ID        int64               `json:"id"`
	CardID    int64               `json:"card_id"`
	Name      *string             `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
	Amount    decimal.Decimal     `json:"amount"`
	CreatedAt time.Time           `json:"created_at"`
}
