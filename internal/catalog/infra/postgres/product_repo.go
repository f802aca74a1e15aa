package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dwikikusuma/shopping-hub/internal/catalog/app"
	"github.com/dwikikusuma/shopping-hub/internal/catalog/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	productUUID, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product id: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, sku, name, price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		productUUID, p.SKU, p.Name, p.Price,
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	productUUID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product id: %w", err)
	}

	var (
		p   domain.Product
		pid uuid.UUID
	)
	err = r.db.QueryRowContext(ctx, `
		SELECT id, sku, name, price, created_at
		FROM products WHERE id = $1`, productUUID,
	).Scan(&pid, &p.SKU, &p.Name, &p.Price, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}
	p.ID = pid.String()
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sku, name, price, created_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var (
			p   domain.Product
			pid uuid.UUID
		)
		if err := rows.Scan(&pid, &p.SKU, &p.Name, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.ID = pid.String()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	productUUID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productUUID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
