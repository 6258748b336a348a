package postgres

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultProductPage  = 1
	defaultProductLimit = 12
)

// productRepository implements the domain.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a product with its reviews, newest review first.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	err := repo.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List retrieves a filtered, sorted page of products plus the total count of
// products matching the filters before pagination.
func (repo *productRepository) List(ctx context.Context, query repository.ListProductsQuery) ([]*entity.Product, int64, error) {
	page := query.Page
	if page < 1 {
		page = defaultProductPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultProductLimit
	}

	filtered := repo.applyFilters(repo.db.WithContext(ctx).Model(&model.ProductModel{}), query)

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	err := filtered.
		Order(orderClauseForSort(query.Sort)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&productModels).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// applyFilters narrows the query by the optional catalog filters.
func (repo *productRepository) applyFilters(db *gorm.DB, query repository.ListProductsQuery) *gorm.DB {
	if query.Search != "" {
		db = db.Where("name ILIKE ?", "%"+query.Search+"%")
	}
	if query.Category != "" {
		db = db.Where("category = ?", query.Category.String())
	}
	if query.MinPrice != nil {
		db = db.Where("price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		db = db.Where("price <= ?", *query.MaxPrice)
	}

	return db
}

// orderClauseForSort maps a catalog sort order to an ORDER BY clause.
func orderClauseForSort(sort repository.ProductSort) string {
	switch sort {
	case repository.ProductSortPriceAsc:
		return "price ASC"
	case repository.ProductSortPriceDesc:
		return "price DESC"
	case repository.ProductSortRating:
		return "ratings DESC"
	case repository.ProductSortNewest:
		return "created_at DESC"
	default:
		return "created_at DESC"
	}
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid product data")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product's catalog fields. The derived rating
// columns are written separately via UpdateDerivedRatings.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"images":      marshalImages(product.Images),
			"category":    product.Category.String(),
			"stock":       product.Stock,
		})

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid product data")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product together with its reviews.
// Order lines keep their checkout-time snapshot and are left untouched.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&model.ReviewModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete product reviews")
	}

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", id).
		Delete(&model.WishlistItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete product wishlist entries")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Count returns the total number of products.
func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

// AddReview persists a new review. The unique (product_id, user_id) index
// enforces the one-review-per-user rule even under concurrent writes.
func (repo *productRepository) AddReview(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("rating must be between 1 and 5")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// UpdateDerivedRatings stores the recomputed ratings mean and review count.
func (repo *productRepository) UpdateDerivedRatings(ctx context.Context, productID uuid.UUID, ratings float64, numReviews int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"ratings":     ratings,
			"num_reviews": numReviews,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product ratings")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from stock. The WHERE guard
// makes the decrement fail rather than drive stock negative when concurrent
// orders race for the last units.
func (repo *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement product stock")
	}

	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	reviews := make([]entity.Review, 0, len(data.Reviews))
	for _, reviewM := range data.Reviews {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Images:      unmarshalImages(data.Images),
		Category:    entity.Category(data.Category),
		Stock:       data.Stock,
		Ratings:     data.Ratings,
		NumReviews:  data.NumReviews,
		Reviews:     reviews,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Images:      marshalImages(data.Images),
		Category:    data.Category.String(),
		Stock:       data.Stock,
		Ratings:     data.Ratings,
		NumReviews:  data.NumReviews,
		CreatedBy:   data.CreatedBy,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) entity.Review {
	if data == nil {
		return entity.Review{}
	}

	return entity.Review{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Name:      data.Name,
		AvatarURL: data.AvatarURL,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Name:      data.Name,
		AvatarURL: data.AvatarURL,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// marshalImages encodes image URLs as the JSON array stored in the jsonb column.
func marshalImages(images []string) string {
	if len(images) == 0 {
		return "[]"
	}

	raw, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}

	return string(raw)
}

// unmarshalImages decodes the jsonb column back into the ordered URL slice.
func unmarshalImages(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []string{}
	}

	return images
}
