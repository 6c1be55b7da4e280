package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cardzen/internal/database"
	"cardzen/internal/model"
)

const cardColumns = `id, user_id, name, description, price, created_at`

func CreateCard(ctx context.Context, db database.Querier, c *model.Card) (*model.Card, error) {
	row := db.QueryRowContext(ctx,
		`INSERT INTO cards (user_id, name, description, price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.UserID,
		c.Name,
		c.Description,
		c.Price,
	)
	if err := row.Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("CreateCard: %w", err)
	}
	return c, nil
}

func ListCards(ctx context.Context, db database.Querier) ([]model.Card, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ListCards: %w", err)
	}
	defer rows.Close()

	cards := []model.Card{}
	for rows.Next() {
		var c model.Card
		if err := scanCard(rows, &c); err != nil {
			return nil, fmt.Errorf("ListCards: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCards: %w", err)
	}
	return cards, nil
}

func GetCardByID(ctx context.Context, db database.Querier, id int64) (*model.Card, error) {
	row := db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	c := &model.Card{}
	if err := scanCard(row, c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetCardByID: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("GetCardByID: %w", err)
	}
	return c, nil
}

// UpdateCard overwrites name, description and price of the card with c.ID.
func UpdateCard(ctx context.Context, db database.Querier, c *model.Card) error {
	res, err := db.ExecContext(ctx,
		`UPDATE cards SET name = $1, description = $2, price = $3
		 WHERE id = $4`,
		c.Name,
		c.Description,
		c.Price,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCard: %w", err)
	}
	return requireAffected("UpdateCard", res)
}

func DeleteCard(ctx context.Context, db database.Querier, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteCard: %w", err)
	}
	return requireAffected("DeleteCard", res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(s scanner, c *model.Card) error {
	return s.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Description,
		&c.Price,
		&c.CreatedAt,
	)
}

func requireAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
