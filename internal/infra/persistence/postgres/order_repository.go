package postgres

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order together with its lines.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Omit("User").Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order data")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order with its lines and the owner's identity.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	err := repo.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("User").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUser retrieves a user's orders, newest first.
func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	err := repo.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// FindAll retrieves every order, newest first, with the owner resolved.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	err := repo.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("User").
		Order("created_at DESC").
		Find(&orderModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus persists the order's payment and fulfillment status, including
// the PaidAt and DeliveredAt stamps.
func (repo *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"payment_status": string(order.PaymentStatus),
			"order_status":   string(order.OrderStatus),
			"paid_at":        order.PaidAt,
			"delivered_at":   order.DeliveredAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Count returns the total number of orders.
func (repo *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// SumPaidSales returns the sum of TotalPrice over paid orders.
func (repo *orderRepository) SumPaidSales(ctx context.Context) (float64, error) {
	var total float64

	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("payment_status = ?", string(entity.PaymentStatusPaid)).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum paid sales")
	}

	return total, nil
}

// PaidSalesByDay aggregates paid orders by UTC calendar day, returning at
// most limit of the most recent days in ascending date order.
func (repo *orderRepository) PaidSalesByDay(ctx context.Context, limit int) ([]repository.SalesPoint, error) {
	var rows []struct {
		Date       string
		TotalSales float64
		Count      int
	}

	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS date, SUM(total_price) AS total_sales, COUNT(*) AS count").
		Where("payment_status = ?", string(entity.PaymentStatusPaid)).
		Group("date").
		Order("date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate paid sales by day")
	}

	points := make([]repository.SalesPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, repository.SalesPoint{
			Date:       row.Date,
			TotalSales: row.TotalSales,
			Count:      row.Count,
		})
	}
	slices.Reverse(points)

	return points, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	lines := make([]entity.OrderLine, 0, len(data.Lines))
	for _, lineM := range data.Lines {
		lines = append(lines, entity.OrderLine{
			ProductID: lineM.ProductID,
			Name:      lineM.Name,
			Price:     lineM.Price,
			Image:     lineM.Image,
			Quantity:  lineM.Quantity,
		})
	}

	order := &entity.Order{
		ID:     data.ID,
		UserID: data.UserID,
		Lines:  lines,
		ShippingAddress: entity.ShippingAddress{
			Address:    data.Address,
			City:       data.City,
			PostalCode: data.PostalCode,
			Country:    data.Country,
		},
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		PaymentStatus: entity.PaymentStatus(data.PaymentStatus),
		OrderStatus:   entity.OrderStatus(data.OrderStatus),
		ItemsPrice:    data.ItemsPrice,
		ShippingPrice: data.ShippingPrice,
		TaxPrice:      data.TaxPrice,
		TotalPrice:    data.TotalPrice,
		PaidAt:        data.PaidAt,
		DeliveredAt:   data.DeliveredAt,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}

	if data.User != nil {
		order.UserName = data.User.Name
		order.UserEmail = data.User.Email
	}

	return order
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	lines := make([]*model.OrderLineModel, 0, len(data.Lines))
	for _, line := range data.Lines {
		lines = append(lines, &model.OrderLineModel{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}

	return &model.OrderModel{
		ID:            data.ID,
		UserID:        data.UserID,
		Address:       data.ShippingAddress.Address,
		City:          data.ShippingAddress.City,
		PostalCode:    data.ShippingAddress.PostalCode,
		Country:       data.ShippingAddress.Country,
		PaymentMethod: string(data.PaymentMethod),
		PaymentStatus: string(data.PaymentStatus),
		OrderStatus:   string(data.OrderStatus),
		ItemsPrice:    data.ItemsPrice,
		ShippingPrice: data.ShippingPrice,
		TaxPrice:      data.TaxPrice,
		TotalPrice:    data.TotalPrice,
		PaidAt:        data.PaidAt,
		DeliveredAt:   data.DeliveredAt,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
		Lines:         lines,
	}
}
