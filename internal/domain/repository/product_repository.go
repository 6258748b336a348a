package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateReview is returned when a user reviews the same product twice.
var ErrDuplicateReview = errors.New("product already reviewed by this user")

// ErrInsufficientStock is returned when a guarded stock decrement finds
// fewer units on hand than requested.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductSort enumerates the supported catalog sort orders.
type ProductSort string

const (
	ProductSortNewest    ProductSort = ""
	ProductSortPriceAsc  ProductSort = "price-asc"
	ProductSortPriceDesc ProductSort = "price-desc"
	ProductSortRating    ProductSort = "rating"
)

// ListProductsQuery carries catalog filtering and pagination parameters.
type ListProductsQuery struct {
	Page     int    // 1-based. Defaults to 1.
	Limit    int    // Page size. Defaults to 12.
	Search   string // Case-insensitive substring match on the product name.
	Category entity.Category
	MinPrice *float64
	MaxPrice *float64
	Sort     ProductSort
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a product with its reviews.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves a filtered, sorted page of products and the total count
	// of products matching the filters before pagination.
	List(ctx context.Context, query ListProductsQuery) ([]*entity.Product, int64, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)

	// AddReview persists a new review. Returns ErrDuplicateReview when the
	// user has already reviewed the product.
	AddReview(ctx context.Context, review *entity.Review) error

	// UpdateDerivedRatings stores the recomputed ratings mean and review
	// count on the product row.
	UpdateDerivedRatings(ctx context.Context, productID uuid.UUID, ratings float64, numReviews int) error

	// DecrementStock atomically subtracts quantity from stock, failing with
	// ErrInsufficientStock when fewer units remain.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
}
