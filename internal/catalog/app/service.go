package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shopping-hub/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, sku, name string, price decimal.Decimal) (domain.Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)

	if sku == "" || name == "" || price.Sign() <= 0 {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, domain.Product{
		ID:    uuid.NewString(),
		SKU:   sku,
		Name:  name,
		Price: price,
	})
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// DeleteProduct removes a catalog entry. Carts and orders that copied the
// product are unaffected.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
