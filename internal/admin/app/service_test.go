package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogStats struct {
	count int64
	err   error
}

func (f fakeCatalogStats) Count(ctx context.Context) (int64, error) { return f.count, f.err }

type fakeOrderStats struct {
	count int64
	sales decimal.Decimal
	err   error
}

func (f fakeOrderStats) CountOrders(ctx context.Context) (int64, error) { return f.count, f.err }
func (f fakeOrderStats) GrossSales(ctx context.Context) (decimal.Decimal, error) {
	return f.sales, f.err
}

func TestDashboard(t *testing.T) {
	t.Run("aggregates all three stats", func(t *testing.T) {
		svc := NewService(
			fakeCatalogStats{count: 12},
			fakeOrderStats{count: 34, sales: decimal.RequireFromString("567.89")},
		)

		got, err := svc.Dashboard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.TotalProducts)
		assert.Equal(t, int64(34), got.TotalOrders)
		assert.True(t, got.TotalSales.Equal(decimal.RequireFromString("567.89")))
	})

	t.Run("any failure fails the read", func(t *testing.T) {
		svc := NewService(
			fakeCatalogStats{err: errors.New("db down")},
			fakeOrderStats{},
		)

		_, err := svc.Dashboard(context.Background())
		assert.Error(t, err)
	})
}
