package app

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type CatalogStats interface {
	Count(ctx context.Context) (int64, error)
}

type OrderStats interface {
	CountOrders(ctx context.Context) (int64, error)
	GrossSales(ctx context.Context) (decimal.Decimal, error)
}

// Dashboard is the admin landing aggregate: counts and gross sales across
// all users.
type Dashboard struct {
	TotalProducts int64           `json:"total_products"`
	TotalOrders   int64           `json:"total_orders"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}

type Service struct {
	catalog CatalogStats
	orders  OrderStats
}

func NewService(catalog CatalogStats, orders OrderStats) *Service {
	return &Service{catalog: catalog, orders: orders}
}

// Dashboard gathers the three aggregates concurrently; any failure fails
// the whole read.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.catalog.Count(ctx)
		out.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := s.orders.CountOrders(ctx)
		out.TotalOrders = n
		return err
	})
	g.Go(func() error {
		total, err := s.orders.GrossSales(ctx)
		out.TotalSales = total
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}
