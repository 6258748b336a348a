package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Orders are never deleted.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Address       string    `gorm:"type:varchar(255);not null"`
	City          string    `gorm:"type:varchar(100);not null"`
	PostalCode    string    `gorm:"type:varchar(20);not null"`
	Country       string    `gorm:"type:varchar(100);not null"`
	PaymentMethod string    `gorm:"type:varchar(30);not null;default:'Cash on Delivery'"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'Pending'"`
	OrderStatus   string    `gorm:"type:varchar(20);not null;default:'Processing'"`
	ItemsPrice    float64   `gorm:"type:decimal(12,2);not null"`
	ShippingPrice float64   `gorm:"type:decimal(12,2);not null;default:0"`
	TaxPrice      float64   `gorm:"type:decimal(12,2);not null;default:0"`
	TotalPrice    float64   `gorm:"type:decimal(12,2);not null"`
	PaidAt        *time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	Lines []*OrderLineModel `gorm:"foreignKey:OrderID"`
	User  *UserModel        `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table.
// Name, Price and Image are checkout-time snapshots of the product.
type OrderLineModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Price     float64   `gorm:"type:decimal(12,2);not null"`
	Image     string    `gorm:"type:text"`
	Quantity  int       `gorm:"not null;check:quantity >= 1"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
