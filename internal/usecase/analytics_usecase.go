package usecase

import (
	"context"

	"storefront/internal/domain/repository"
)

// DashboardOutput aggregates the admin dashboard counters.
type DashboardOutput struct {
	TotalUsers    int64
	TotalProducts int64
	TotalOrders   int64
	TotalSales    float64
	SalesData     []repository.SalesPoint
}

// AnalyticsUsecase defines the interface for the admin analytics dashboard.
type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (*DashboardOutput, error)
}
