package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	eventPublisher service.EventPublisher
	qrcodeService  service.QRCodeService
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	EventPublisher service.EventPublisher
	QRCodeService  service.QRCodeService
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		eventPublisher: params.EventPublisher,
		qrcodeService:  params.QRCodeService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder decrements stock and persists the order in one transaction.
// Line snapshots come from the database product, never from the client.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.log(ctx).Info("Placing order", slog.Any("userID", input.UserID), slog.Int("lines", len(input.Lines)))

	if len(input.Lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyOrder, "order has no lines")
	}

	paymentMethod := entity.PaymentMethod(input.PaymentMethod)
	if input.PaymentMethod == "" {
		paymentMethod = entity.PaymentMethodCashOnDelivery
	} else if !paymentMethod.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment method")
	}

	var placedOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		orderRepo := repoFactory.OrderRepo()

		lines := make([]entity.OrderLine, 0, len(input.Lines))
		var itemsPrice float64
		for _, lineInput := range input.Lines {
			if lineInput.Quantity < 1 {
				return errors.Wrap(domainerrors.ErrValidationFailed, "line quantity must be at least 1")
			}

			product, err := productRepo.FindByID(ctx, lineInput.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrap(domainerrors.ErrProductNotFound, "ordered product not found")
				}

				return errors.Wrap(err, "failed to load ordered product")
			}

			if err := productRepo.DecrementStock(ctx, product.ID, lineInput.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WrapMessage("insufficient stock for " + product.Name)
				}

				return errors.Wrap(err, "failed to decrement product stock")
			}

			var image string
			if len(product.Images) > 0 {
				image = product.Images[0]
			}

			lines = append(lines, entity.OrderLine{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Image:     image,
				Quantity:  lineInput.Quantity,
			})
			itemsPrice += product.Price * float64(lineInput.Quantity)
		}

		itemsPrice = roundToCents(itemsPrice)

		order := &entity.Order{
			UserID:          input.UserID,
			Lines:           lines,
			ShippingAddress: input.ShippingAddress,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   entity.PaymentStatusPending,
			OrderStatus:     entity.OrderStatusProcessing,
			ItemsPrice:      itemsPrice,
			ShippingPrice:   input.ShippingPrice,
			TaxPrice:        input.TaxPrice,
			TotalPrice:      roundToCents(itemsPrice + input.ShippingPrice + input.TaxPrice),
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		placedOrder = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to place order", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute place order transaction")
	}

	srv.publishOrderEvent(ctx, service.OrderEventCreated, placedOrder)
	srv.log(ctx).Info("Order placed", slog.Any("orderID", placedOrder.ID), slog.Float64("totalPrice", placedOrder.TotalPrice))

	return placedOrder, nil
}

// GetOrder returns the order when the requester owns it or is an admin.
func (srv *orderService) GetOrder(ctx context.Context, orderID, requesterID uuid.UUID, requesterIsAdmin bool) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if !requesterIsAdmin && order.UserID != requesterID {
		srv.log(ctx).Warn("Order access denied", slog.Any("orderID", orderID), slog.Any("requesterID", requesterID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "order belongs to another user")
	}

	return order, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list orders", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListAllOrders returns every order with owner identity resolved.
func (srv *orderService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list all orders", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

// UpdateOrderStatus applies payment and fulfillment status changes. PaidAt and
// DeliveredAt are stamped on their first transitions and never moved again.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	srv.log(ctx).Info("Updating order status", slog.Any("orderID", input.OrderID))

	if input.PaymentStatus != "" && !entity.PaymentStatus(input.PaymentStatus).IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown payment status")
	}
	if input.OrderStatus != "" && !entity.OrderStatus(input.OrderStatus).IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	var updatedOrder *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to load order for status update")
		}

		now := time.Now()
		if input.PaymentStatus != "" {
			newStatus := entity.PaymentStatus(input.PaymentStatus)
			if newStatus == entity.PaymentStatusPaid && order.PaidAt == nil {
				order.PaidAt = &now
			}
			order.PaymentStatus = newStatus
		}
		if input.OrderStatus != "" {
			newStatus := entity.OrderStatus(input.OrderStatus)
			if newStatus == entity.OrderStatusDelivered && order.DeliveredAt == nil {
				order.DeliveredAt = &now
			}
			order.OrderStatus = newStatus
		}

		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		updatedOrder = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order status update failed", slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	srv.publishOrderEvent(ctx, service.OrderEventStatusUpdated, updatedOrder)

	return updatedOrder, nil
}

// OrderQRCode renders a PNG QR code referencing the order, applying the same
// visibility rule as GetOrder.
func (srv *orderService) OrderQRCode(ctx context.Context, orderID, requesterID uuid.UUID, requesterIsAdmin bool) ([]byte, error) {
	if _, err := srv.GetOrder(ctx, orderID, requesterID, requesterIsAdmin); err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateOrderQR(orderID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate order QR code", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}

// publishOrderEvent publishes an order lifecycle event. Publish failures are
// logged and never fail the order operation.
func (srv *orderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		EventType:     eventType,
		OrderID:       order.ID.String(),
		UserID:        order.UserID.String(),
		TotalPrice:    order.TotalPrice,
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
		OccurredAt:    time.Now().UTC(),
	}

	if err := srv.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("eventType", eventType),
			slog.Any("orderID", order.ID),
			slog.Any("error", err))
	}
}

// roundToCents rounds a monetary amount to two decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
