package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderLineRequest is one requested line at checkout
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	Lines           []OrderLineRequest     `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressPayload `json:"shippingAddress" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ShippingPrice   float64                `json:"shippingPrice" validate:"gte=0"`
	TaxPrice        float64                `json:"taxPrice" validate:"gte=0"`
}

// UpdateOrderStatusRequest represents the admin request body for a status
// change. Omitted fields are left unchanged.
type UpdateOrderStatusRequest struct {
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

// PlaceOrder handles checkout
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, usecase.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := h.orderUC.PlaceOrder(c.Request().Context(), &usecase.PlaceOrderInput{
		UserID: userID,
		Lines:  lines,
		ShippingAddress: entity.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
		ShippingPrice: req.ShippingPrice,
		TaxPrice:      req.TaxPrice,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newOrderResponse(order))
}

// ListMyOrders handles listing the caller's own orders
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.orderUC.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponseList(orders))
}

// GetOrder handles fetching a single order, visible to its owner and admins
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order))
}

// OrderQRCode renders a PNG QR code referencing the order
func (h *OrderHandler) OrderQRCode(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	png, err := h.orderUC.OrderQRCode(c.Request().Context(), orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ListAllOrders handles the admin listing of every order
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.orderUC.ListAllOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponseList(orders))
}

// UpdateOrderStatus handles the admin payment and fulfillment status change
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), &usecase.UpdateOrderStatusInput{
		OrderID:       orderID,
		OrderStatus:   req.OrderStatus,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order))
}
