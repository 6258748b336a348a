package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	domainservice "storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	t              *testing.T
	service        usecase.OrderUsecase
	txManager      *mockRepo.MockTransactionManager
	orderRepo      *mockRepo.MockOrderRepository
	eventPublisher *mockService.MockEventPublisher
	qrcodeService  *mockService.MockQRCodeService
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	eventPublisher := mockService.NewMockEventPublisher(t)
	qrcodeService := mockService.NewMockQRCodeService(t)

	service := NewOrderService(OrderServiceParams{
		TxManager:      txManager,
		OrderRepo:      orderRepo,
		EventPublisher: eventPublisher,
		QRCodeService:  qrcodeService,
		Logger:         newDiscardLogger(),
	})

	return orderServiceFixtures{
		t:              t,
		service:        service,
		txManager:      txManager,
		orderRepo:      orderRepo,
		eventPublisher: eventPublisher,
		qrcodeService:  qrcodeService,
	}
}

// onExecute stubs the transaction manager to run setup against a fresh
// repository factory, invoke the transactional closure, and return returnErr.
func (f orderServiceFixtures) onExecute(ctx context.Context, returnErr error, setup func(factory *mockRepo.MockRepositoryFactory)) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(f.t)
			setup(factory)

			_ = fn(factory)
		}).
		Return(returnErr)
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	phoneID := uuid.New()
	caseID := uuid.New()
	input := &usecase.PlaceOrderInput{
		UserID: userID,
		Lines: []usecase.OrderLineInput{
			{ProductID: phoneID, Quantity: 2},
			{ProductID: caseID, Quantity: 1},
		},
		ShippingAddress: entity.ShippingAddress{
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "62701",
			Country:    "USA",
		},
		PaymentMethod: "PayPal",
		ShippingPrice: 5.50,
		TaxPrice:      2.00,
	}

	phone := &entity.Product{ID: phoneID, Name: "Phone", Price: 499.99, Images: []string{"/images/phone.jpg"}, Stock: 10}
	phoneCase := &entity.Product{ID: caseID, Name: "Case", Price: 9.99, Stock: 3}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockProductRepo := mockRepo.NewMockProductRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().ProductRepo().Return(mockProductRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockProductRepo.EXPECT().FindByID(ctx, phoneID).Return(phone, nil)
		mockProductRepo.EXPECT().DecrementStock(ctx, phoneID, 2).Return(nil)
		mockProductRepo.EXPECT().FindByID(ctx, caseID).Return(phoneCase, nil)
		mockProductRepo.EXPECT().DecrementStock(ctx, caseID, 1).Return(nil)

		mockOrderRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Order")).
			Run(func(ctx context.Context, order *entity.Order) {
				order.ID = uuid.New()
			}).
			Return(nil)
	})

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(ctx context.Context, event *domainservice.OrderEvent) {
			assert.Equal(t, domainservice.OrderEventCreated, event.EventType)
			assert.Equal(t, userID.String(), event.UserID)
		}).
		Return(nil)

	order, err := fx.service.PlaceOrder(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, entity.OrderStatusProcessing, order.OrderStatus)
	assert.Equal(t, entity.PaymentMethodPayPal, order.PaymentMethod)

	// Line snapshots come from the stored product, not the request.
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "Phone", order.Lines[0].Name)
	assert.Equal(t, 499.99, order.Lines[0].Price)
	assert.Equal(t, "/images/phone.jpg", order.Lines[0].Image)
	assert.Equal(t, 2, order.Lines[0].Quantity)

	assert.Equal(t, 1009.97, order.ItemsPrice) // 2 * 499.99 + 9.99
	assert.Equal(t, 1017.47, order.TotalPrice) // items + 5.50 + 2.00
}

func TestOrderService_PlaceOrder_DefaultsToCashOnDelivery(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	productID := uuid.New()
	input := &usecase.PlaceOrderInput{
		UserID: uuid.New(),
		Lines:  []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockProductRepo := mockRepo.NewMockProductRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().ProductRepo().Return(mockProductRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(&entity.Product{ID: productID, Name: "Phone", Price: 10, Stock: 1}, nil)
		mockProductRepo.EXPECT().DecrementStock(ctx, productID, 1).Return(nil)
		mockOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	})

	fx.eventPublisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := fx.service.PlaceOrder(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCashOnDelivery, order.PaymentMethod)
}

func TestOrderService_PlaceOrder_EmptyOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	input := &usecase.PlaceOrderInput{UserID: uuid.New()}

	order, err := fx.service.PlaceOrder(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyOrder))
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	productID := uuid.New()
	input := &usecase.PlaceOrderInput{
		UserID: uuid.New(),
		Lines:  []usecase.OrderLineInput{{ProductID: productID, Quantity: 5}},
	}

	product := &entity.Product{ID: productID, Name: "Phone", Price: 499.99, Stock: 2}

	// No event is published for a failed order; the publisher mock would
	// fail the test on any call.
	fx.onExecute(ctx, domainerrors.ErrInsufficientStock.WrapMessage("insufficient stock for Phone"), func(factory *mockRepo.MockRepositoryFactory) {
		mockProductRepo := mockRepo.NewMockProductRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().ProductRepo().Return(mockProductRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(product, nil)
		mockProductRepo.EXPECT().DecrementStock(ctx, productID, 5).Return(repository.ErrInsufficientStock)
	})

	order, err := fx.service.PlaceOrder(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestOrderService_GetOrder_OwnerAllowed(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	ownerID := uuid.New()
	expectedOrder := &entity.Order{ID: orderID, UserID: ownerID}

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(expectedOrder, nil)

	order, err := fx.service.GetOrder(ctx, orderID, ownerID, false)

	require.NoError(t, err)
	assert.Equal(t, expectedOrder, order)
}

func TestOrderService_GetOrder_ForbiddenForOtherUser(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	existingOrder := &entity.Order{ID: orderID, UserID: uuid.New()}

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(existingOrder, nil)

	order, err := fx.service.GetOrder(ctx, orderID, uuid.New(), false)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestOrderService_GetOrder_AdminSeesAnyOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	existingOrder := &entity.Order{ID: orderID, UserID: uuid.New()}

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(existingOrder, nil)

	order, err := fx.service.GetOrder(ctx, orderID, uuid.New(), true)

	require.NoError(t, err)
	assert.Equal(t, existingOrder, order)
}

func TestOrderService_UpdateOrderStatus_StampsPaidAt(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	input := &usecase.UpdateOrderStatusInput{
		OrderID:       orderID,
		PaymentStatus: "Paid",
	}

	existingOrder := &entity.Order{
		ID:            orderID,
		UserID:        uuid.New(),
		PaymentStatus: entity.PaymentStatusPending,
		OrderStatus:   entity.OrderStatusProcessing,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(existingOrder, nil)
		mockOrderRepo.EXPECT().UpdateStatus(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	})

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(ctx context.Context, event *domainservice.OrderEvent) {
			assert.Equal(t, domainservice.OrderEventStatusUpdated, event.EventType)
			assert.Equal(t, string(entity.PaymentStatusPaid), event.PaymentStatus)
		}).
		Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
	require.NotNil(t, order.PaidAt)
	assert.Nil(t, order.DeliveredAt)
}

func TestOrderService_UpdateOrderStatus_DoesNotRestampPaidAt(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	firstPaidAt := time.Now().Add(-24 * time.Hour)
	input := &usecase.UpdateOrderStatusInput{
		OrderID:       orderID,
		PaymentStatus: "Paid",
		OrderStatus:   "Delivered",
	}

	existingOrder := &entity.Order{
		ID:            orderID,
		UserID:        uuid.New(),
		PaymentStatus: entity.PaymentStatusPaid,
		OrderStatus:   entity.OrderStatusShipped,
		PaidAt:        &firstPaidAt,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(existingOrder, nil)
		mockOrderRepo.EXPECT().UpdateStatus(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	})

	fx.eventPublisher.EXPECT().PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	order, err := fx.service.UpdateOrderStatus(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, order.PaidAt)
	assert.True(t, order.PaidAt.Equal(firstPaidAt)) // first stamp is kept
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, entity.OrderStatusDelivered, order.OrderStatus)
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	input := &usecase.UpdateOrderStatusInput{
		OrderID:     uuid.New(),
		OrderStatus: "Teleported",
	}

	order, err := fx.service.UpdateOrderStatus(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_UpdateOrderStatus_PublishFailureDoesNotFail(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	input := &usecase.UpdateOrderStatusInput{
		OrderID:     orderID,
		OrderStatus: "Shipped",
	}

	existingOrder := &entity.Order{
		ID:            orderID,
		UserID:        uuid.New(),
		PaymentStatus: entity.PaymentStatusPaid,
		OrderStatus:   entity.OrderStatusProcessing,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockOrderRepo.EXPECT().FindByID(ctx, orderID).Return(existingOrder, nil)
		mockOrderRepo.EXPECT().UpdateStatus(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	})

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker unavailable"))

	order, err := fx.service.UpdateOrderStatus(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.OrderStatus)
}

func TestOrderService_ListMyOrders_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	expectedOrders := []*entity.Order{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
	}

	fx.orderRepo.EXPECT().FindByUser(ctx, userID).Return(expectedOrders, nil)

	orders, err := fx.service.ListMyOrders(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expectedOrders, orders)
}

func TestOrderService_OrderQRCode_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	ownerID := uuid.New()
	expectedPNG := []byte{0x89, 0x50, 0x4e, 0x47}

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, UserID: ownerID}, nil)
	fx.qrcodeService.EXPECT().GenerateOrderQR(orderID).Return(expectedPNG, nil)

	png, err := fx.service.OrderQRCode(ctx, orderID, ownerID, false)

	require.NoError(t, err)
	assert.Equal(t, expectedPNG, png)
}

func TestOrderService_OrderQRCode_ForbiddenForOtherUser(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, UserID: uuid.New()}, nil)

	png, err := fx.service.OrderQRCode(ctx, orderID, uuid.New(), false)

	assert.Error(t, err)
	assert.Nil(t, png)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
