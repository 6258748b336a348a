// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Category is the fixed product category taxonomy.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryShoes       Category = "Shoes"
	CategoryAccessories Category = "Accessories"
	CategoryHomeGarden  Category = "Home & Garden"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"
	CategoryBeauty      Category = "Beauty"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category, in display order.
//
//nolint:gochecknoglobals
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryShoes,
	CategoryAccessories,
	CategoryHomeGarden,
	CategorySports,
	CategoryBooks,
	CategoryToys,
	CategoryBeauty,
	CategoryOther,
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

// Product is a catalog item offered for sale.
// Ratings and NumReviews are derived from Reviews and recomputed whenever
// a review is added; they are never set directly.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64  // Unit price. Never negative.
	Images      []string // Ordered image URLs; the first is the cover image.
	Category    Category
	Stock       int     // Units on hand. Never negative.
	Ratings     float64 // Arithmetic mean of review ratings, 0 when unreviewed.
	NumReviews  int     // Count of reviews.
	Reviews     []Review
	CreatedBy   uuid.UUID // Admin user who created the product.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecalculateRatings recomputes the derived Ratings and NumReviews fields
// from the loaded Reviews slice.
func (p *Product) RecalculateRatings() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Ratings = 0

		return
	}

	var sum int
	for _, review := range p.Reviews {
		sum += review.Rating
	}
	p.Ratings = float64(sum) / float64(p.NumReviews)
}

// Review is a customer review attached to a product.
// A user may review a given product at most once.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Name      string // Snapshot of the reviewer's display name at review time.
	AvatarURL string // Snapshot of the reviewer's avatar URL at review time.
	Rating    int    // 1 through 5.
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
