package store

import (
	"context"
	"fmt"

	"cardzen/internal/database"
	"cardzen/internal/model"
)

func CreateTransaction(ctx context.Context, db database.Querier, t *model.Transaction) (*model.Transaction, error) {
	row := db.QueryRowContext(ctx,
		`INSERT INTO transactions (buyer_id, card_id, amount)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		t.BuyerID,
		t.CardID,
		t.Amount,
	)
	if err := row.Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("CreateTransaction: %w", err)
	}
	return t, nil
}

// ListTransactionsByBuyer returns the buyer's transactions with the card's
// current name and price. Transactions whose card was deleted are kept with
// a null name and price.
func ListTransactionsByBuyer(ctx context.Context, db database.Querier, buyerID int64) ([]model.TransactionEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT t.id, t.card_id, c.name, c.price, t.amount, t.created_at
		 FROM transactions t
		 LEFT JOIN cards c ON t.card_id = c.id
		 WHERE t.buyer_id = $1
		 ORDER BY t.id`,
		buyerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsByBuyer: %w", err)
	}
	defer rows.Close()

	entries := []model.TransactionEntry{}
	for rows.Next() {
		var e model.TransactionEntry
		if err := rows.Scan(&e.ID, &e.CardID, &e.Name, &e.Price, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListTransactionsByBuyer: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactionsByBuyer: %w", err)
	}
	return entries, nil
}
