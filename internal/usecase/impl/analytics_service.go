package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// salesHistoryDays is the window shown on the dashboard sales chart.
const salesHistoryDays = 7

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *slog.Logger
}

// AnalyticsServiceParams holds dependencies for analyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Logger      *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard collects the admin dashboard counters with read-only aggregation.
func (srv *analyticsService) Dashboard(ctx context.Context) (*usecase.DashboardOutput, error) {
	totalUsers, err := srv.userRepo.Count(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to count users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to count users")
	}

	totalProducts, err := srv.productRepo.Count(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to count products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to count products")
	}

	totalOrders, err := srv.orderRepo.Count(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to count orders", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to count orders")
	}

	totalSales, err := srv.orderRepo.SumPaidSales(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to sum paid sales", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to sum paid sales")
	}

	salesData, err := srv.orderRepo.PaidSalesByDay(ctx, salesHistoryDays)
	if err != nil {
		srv.log(ctx).Error("Failed to aggregate sales history", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to aggregate sales history")
	}

	return &usecase.DashboardOutput{
		TotalUsers:    totalUsers,
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalSales:    totalSales,
		SalesData:     salesData,
	}, nil
}
