package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartdomain "github.com/dwikikusuma/shopping-hub/internal/cart/domain"
	"github.com/dwikikusuma/shopping-hub/internal/order/app"
	"github.com/dwikikusuma/shopping-hub/internal/order/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// PlaceFromCart reads the cart rows under lock, appends the order with its
// items, and deletes the cart rows, all in one transaction. Either the
// ledger gains an entry and the cart empties, or nothing happens.
func (r *OrderRepo) PlaceFromCart(ctx context.Context, userID, orderID string, placedAt time.Time) (domain.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid user id: %w", err)
	}
	orderUUID, err := uuid.Parse(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid order id: %w", err)
	}

	var placed domain.Order
	err = r.execTX(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT sku, name, price, quantity
			FROM cart_items
			WHERE user_id = $1
			ORDER BY sku
			FOR UPDATE`, userUUID)
		if err != nil {
			return fmt.Errorf("lock cart: %w", err)
		}

		var items []cartdomain.LineItem
		for rows.Next() {
			var it cartdomain.LineItem
			if err := rows.Scan(&it.SKU, &it.Name, &it.Price, &it.Quantity); err != nil {
				rows.Close()
				return fmt.Errorf("scan cart item: %w", err)
			}
			items = append(items, it)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		if len(items) == 0 {
			return app.ErrEmptyCart
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, user_id, placed_at)
			VALUES ($1, $2, $3)`, orderUUID, userUUID, placedAt,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, it := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, sku, name, price, quantity)
				VALUES ($1, $2, $3, $4, $5)`,
				orderUUID, it.SKU, it.Name, it.Price, it.Quantity,
			); err != nil {
				return fmt.Errorf("insert order item %s: %w", it.SKU, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM cart_items WHERE user_id = $1`, userUUID,
		); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		placed = domain.Order{ID: orderID, UserID: userID, PlacedAt: placedAt, Items: items}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return placed, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.placed_at, i.sku, i.name, i.price, i.quantity
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.placed_at DESC, o.id, i.sku`, userUUID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var (
		orders []domain.Order
		cur    *domain.Order
	)
	for rows.Next() {
		var (
			id       uuid.UUID
			placedAt time.Time
			it       cartdomain.LineItem
		)
		if err := rows.Scan(&id, &placedAt, &it.SKU, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if cur == nil || cur.ID != id.String() {
			orders = append(orders, domain.Order{ID: id.String(), UserID: userID, PlacedAt: placedAt})
			cur = &orders[len(orders)-1]
		}
		cur.Items = append(cur.Items, it)
	}
	return orders, rows.Err()
}

// CountOrders and GrossSales feed the admin dashboard.

func (r *OrderRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepo) GrossSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(price * quantity), 0) FROM order_items`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}
