package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/shopping-hub/internal/cart/app"
	"github.com/dwikikusuma/shopping-hub/internal/cart/domain"
)

// CartRepo stores carts as a child table keyed (user_id, sku). A full
// replace is a delete-then-insert inside one transaction, so readers never
// observe a partially written cart.
type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, userID string) ([]domain.LineItem, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT sku, name, price, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY sku`, userUUID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.SKU, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *CartRepo) Replace(ctx context.Context, userID string, items []domain.LineItem) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userUUID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	for _, it := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, sku, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			userUUID, it.SKU, it.Name, it.Price, it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert cart item %s: %w", it.SKU, err)
		}
	}

	return tx.Commit()
}

func (r *CartRepo) RemoveItem(ctx context.Context, userID, sku string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	// Deleting an absent sku is deliberately not an error.
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND sku = $2`, userUUID, sku)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID, sku string, quantity int) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3
		WHERE user_id = $1 AND sku = $2`, userUUID, sku, quantity)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return app.ErrItemNotFound
	}
	return nil
}
