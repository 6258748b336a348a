package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
// Ratings and NumReviews are derived columns maintained alongside review writes.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(2000);not null"`
	Price       float64   `gorm:"type:decimal(12,2);not null"`
	Images      string    `gorm:"type:jsonb;not null;default:'[]'"` // JSON array of URLs, order preserved.
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0"`
	Ratings     float64   `gorm:"not null;default:0"`
	NumReviews  int       `gorm:"not null;default:0"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Reviews []*ReviewModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel mirrors the 'reviews' table.
// The (product_id, user_id) pair is unique: one review per user per product.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user"`
	Name      string    `gorm:"type:varchar(100);not null"`
	AvatarURL string    `gorm:"type:varchar(500)"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"type:varchar(2000)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
