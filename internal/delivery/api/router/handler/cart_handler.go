package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// CartHandler serves the cart endpoints. The cart itself lives on the client;
// these routes exist so API clients probing them get a stable answer instead
// of a 404.
type CartHandler struct {
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{logger: params.Logger}
}

const cartMessage = "Cart is managed on the client; the server only sees it at checkout"

// Info answers every cart route with a fixed message
func (h *CartHandler) Info(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": cartMessage})
}
