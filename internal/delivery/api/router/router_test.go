package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// routerFixtures holds a fully registered echo instance with stubbed auth
// dependencies. Handler usecases stay nil; routes that reach a usecase are
// not exercised here.
type routerFixtures struct {
	echo     *echo.Echo
	tokenSvc *mockService.MockTokenService
	userRepo *mockRepo.MockUserRepository
}

func createTestRouter(t *testing.T) routerFixtures {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenSvc := mockService.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	r := NewRouter(RouterParams{
		AuthHandler:      handler.NewAuthHandler(handler.AuthHandlerParams{Logger: logger}),
		ProductHandler:   handler.NewProductHandler(handler.ProductHandlerParams{Logger: logger}),
		OrderHandler:     handler.NewOrderHandler(handler.OrderHandlerParams{Logger: logger}),
		UserHandler:      handler.NewUserHandler(handler.UserHandlerParams{Logger: logger}),
		AnalyticsHandler: handler.NewAnalyticsHandler(handler.AnalyticsHandlerParams{Logger: logger}),
		CartHandler:      handler.NewCartHandler(handler.CartHandlerParams{Logger: logger}),
		AuthMiddleware:   middleware.NewAuthMiddleware(tokenSvc, userRepo),
		Config:           &config.Config{},
	})

	e := echo.New()
	r.RegisterRoutes(e)

	return routerFixtures{
		echo:     e,
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

func TestRegisterRoutes_HealthIsPublic(t *testing.T) {
	fx := createTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRegisterRoutes_CartRequiresAuthentication(t *testing.T) {
	fx := createTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestRegisterRoutes_CartWithSession(t *testing.T) {
	fx := createTestRouter(t)

	userID := uuid.New()
	fx.tokenSvc.EXPECT().ValidateToken("session-token").Return(&service.Claims{
		UserID: userID,
		Role:   entity.RoleCustomer.String(),
	}, nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(&entity.User{
		ID:   userID,
		Role: entity.RoleCustomer,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart is managed on the client")
}
