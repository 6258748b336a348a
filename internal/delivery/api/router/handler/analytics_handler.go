package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler holds dependencies for the admin dashboard handler
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler
func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		logger:      params.Logger,
	}
}

// DashboardResponse aggregates the storefront counters for the admin dashboard.
type DashboardResponse struct {
	TotalUsers    int64                   `json:"totalUsers"`
	TotalProducts int64                   `json:"totalProducts"`
	TotalOrders   int64                   `json:"totalOrders"`
	TotalSales    float64                 `json:"totalSales"`
	SalesData     []repository.SalesPoint `json:"salesData"`
}

// Dashboard handles the admin analytics dashboard
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	output, err := h.analyticsUC.Dashboard(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	salesData := output.SalesData
	if salesData == nil {
		salesData = []repository.SalesPoint{}
	}

	return response.Success(c, http.StatusOK, DashboardResponse{
		TotalUsers:    output.TotalUsers,
		TotalProducts: output.TotalProducts,
		TotalOrders:   output.TotalOrders,
		TotalSales:    output.TotalSales,
		SalesData:     salesData,
	})
}
