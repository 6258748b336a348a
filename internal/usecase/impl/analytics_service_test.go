package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyticsServiceFixtures holds all test dependencies for analytics service tests.
type analyticsServiceFixtures struct {
	service     usecase.AnalyticsUsecase
	userRepo    *mockRepo.MockUserRepository
	productRepo *mockRepo.MockProductRepository
	orderRepo   *mockRepo.MockOrderRepository
}

func createTestAnalyticsService(t *testing.T) analyticsServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)

	service := NewAnalyticsService(AnalyticsServiceParams{
		UserRepo:    userRepo,
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
		Logger:      newDiscardLogger(),
	})

	return analyticsServiceFixtures{
		service:     service,
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func TestAnalyticsService_Dashboard_Success(t *testing.T) {
	fx := createTestAnalyticsService(t)

	ctx := context.Background()
	salesData := []repository.SalesPoint{
		{Date: "2026-08-29", TotalSales: 120.50, Count: 2},
		{Date: "2026-08-30", TotalSales: 89.99, Count: 1},
	}

	fx.userRepo.EXPECT().Count(ctx).Return(int64(3), nil)
	fx.productRepo.EXPECT().Count(ctx).Return(int64(5), nil)
	fx.orderRepo.EXPECT().Count(ctx).Return(int64(7), nil)
	fx.orderRepo.EXPECT().SumPaidSales(ctx).Return(210.49, nil)
	fx.orderRepo.EXPECT().PaidSalesByDay(ctx, salesHistoryDays).Return(salesData, nil)

	output, err := fx.service.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), output.TotalUsers)
	assert.Equal(t, int64(5), output.TotalProducts)
	assert.Equal(t, int64(7), output.TotalOrders)
	assert.Equal(t, 210.49, output.TotalSales)
	assert.Equal(t, salesData, output.SalesData)
}

func TestAnalyticsService_Dashboard_CountError(t *testing.T) {
	fx := createTestAnalyticsService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().Count(ctx).Return(int64(0), errors.New("database error"))

	output, err := fx.service.Dashboard(ctx)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "failed to count users")
}
