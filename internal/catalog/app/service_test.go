package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/shopping-hub/internal/catalog/domain"
)

type fakeRepo struct {
	products map[string]domain.Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: make(map[string]domain.Product)}
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		p, err := svc.CreateProduct(ctx, "SKU-1", "Keyboard", decimal.RequireFromString("49.99"))
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "SKU-1", p.SKU)
	})

	t.Run("blank sku", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.CreateProduct(ctx, "   ", "Keyboard", decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero price", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.CreateProduct(ctx, "SKU-1", "Keyboard", decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.CreateProduct(ctx, "SKU-1", "Keyboard", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	_, err = svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts_Empty(t *testing.T) {
	svc := NewService(newFakeRepo())

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
