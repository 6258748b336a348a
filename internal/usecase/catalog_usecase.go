package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ListProductsInput carries the public catalog query parameters.
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}

// ListProductsOutput is one page of the catalog.
type ListProductsOutput struct {
	Products []*entity.Product
	Page     int
	Pages    int
	Total    int64
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Images      []string
	Category    string
	Stock       int
	CreatedBy   uuid.UUID
}

// UpdateProductInput defines a partial product update. Zero-valued fields are
// left unchanged, except Stock: the pointer distinguishes "not provided" from
// an explicit zero, so stock can be set to 0.
type UpdateProductInput struct {
	ProductID   uuid.UUID
	Name        string
	Description string
	Price       float64
	Images      []string
	Category    string
	Stock       *int
}

// AddReviewInput defines the data required to review a product.
type AddReviewInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
}

// CatalogUsecase defines the interface for product catalog operations.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AddReview appends a review and recomputes the product's derived rating
	// fields in the same transaction. Returns the refreshed product.
	AddReview(ctx context.Context, input *AddReviewInput) (*entity.Product, error)
}
