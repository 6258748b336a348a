package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultCatalogPage  = 1
	defaultCatalogLimit = 12

	minRating = 1
	maxRating = 5
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one page of the catalog with pagination metadata.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ListProductsOutput, error) {
	page := input.Page
	if page < 1 {
		page = defaultCatalogPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultCatalogLimit
	}

	query := repository.ListProductsQuery{
		Page:     page,
		Limit:    limit,
		Search:   input.Search,
		Category: entity.Category(input.Category),
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Sort:     repository.ProductSort(input.Sort),
	}

	products, total, err := srv.productRepo.List(ctx, query)
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list products")
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &usecase.ListProductsOutput{
		Products: products,
		Page:     page,
		Pages:    pages,
		Total:    total,
	}, nil
}

// GetProduct returns the full product document with reviews.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// CreateProduct adds a new catalog item.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("name", input.Name))

	category := entity.Category(input.Category)
	if !category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown product category")
	}
	if input.Price < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "stock cannot be negative")
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Images:      input.Images,
		Category:    category,
		Stock:       input.Stock,
		CreatedBy:   input.CreatedBy,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct applies a partial catalog edit. Zero-valued fields are left
// unchanged; Stock uses a pointer so an explicit 0 goes through.
func (srv *catalogService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Updating product", slog.Any("productID", input.ProductID))

	if input.Category != "" && !entity.Category(input.Category).IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown product category")
	}
	if input.Price < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "stock cannot be negative")
	}

	var updatedProduct *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to load product for update")
		}

		if input.Name != "" {
			product.Name = input.Name
		}
		if input.Description != "" {
			product.Description = input.Description
		}
		if input.Price > 0 {
			product.Price = input.Price
		}
		if len(input.Images) > 0 {
			product.Images = input.Images
		}
		if input.Category != "" {
			product.Category = entity.Category(input.Category)
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		updatedProduct = product

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Product update failed", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute product update transaction")
	}

	return updatedProduct, nil
}

// DeleteProduct removes a catalog item, its reviews and wishlist entries.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting product", slog.Any("productID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Product deletion failed", slog.Any("productID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute product deletion transaction")
	}

	return nil
}

// AddReview appends a review and recomputes the derived rating fields inside
// one transaction. Returns the refreshed product.
func (srv *catalogService) AddReview(ctx context.Context, input *usecase.AddReviewInput) (*entity.Product, error) {
	srv.log(ctx).Info("Adding review", slog.Any("productID", input.ProductID), slog.Any("userID", input.UserID))

	if input.Rating < minRating || input.Rating > maxRating {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	var reviewedProduct *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		productRepo := repoFactory.ProductRepo()

		reviewer, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "reviewer not found")
			}

			return errors.Wrap(err, "failed to load reviewer")
		}

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to load product for review")
		}

		for _, existing := range product.Reviews {
			if existing.UserID == input.UserID {
				return errors.Wrap(domainerrors.ErrDuplicateReview, "product already reviewed")
			}
		}

		review := &entity.Review{
			ProductID: input.ProductID,
			UserID:    input.UserID,
			Name:      reviewer.Name,
			AvatarURL: reviewer.AvatarURL,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}

		if err := productRepo.AddReview(ctx, review); err != nil {
			// The unique index is the authority; the pre-check only narrows the race window.
			if errors.Is(err, repository.ErrDuplicateReview) {
				return errors.Wrap(domainerrors.ErrDuplicateReview, "product already reviewed")
			}

			return errors.Wrap(err, "failed to create review")
		}

		product.Reviews = append(product.Reviews, *review)
		product.RecalculateRatings()

		if err := productRepo.UpdateDerivedRatings(ctx, product.ID, product.Ratings, product.NumReviews); err != nil {
			return errors.Wrap(err, "failed to update product ratings")
		}

		reviewedProduct = product

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add review", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review transaction")
	}

	return reviewedProduct, nil
}
