package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	t           *testing.T
	service     usecase.CatalogUsecase
	txManager   *mockRepo.MockTransactionManager
	productRepo *mockRepo.MockProductRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewCatalogService(CatalogServiceParams{
		TxManager:   txManager,
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	return catalogServiceFixtures{
		t:           t,
		service:     service,
		txManager:   txManager,
		productRepo: productRepo,
	}
}

// onExecute stubs the transaction manager to run setup against a fresh
// repository factory, invoke the transactional closure, and return returnErr.
func (f catalogServiceFixtures) onExecute(ctx context.Context, returnErr error, setup func(factory *mockRepo.MockRepositoryFactory)) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(f.t)
			setup(factory)

			_ = fn(factory)
		}).
		Return(returnErr)
}

func TestCatalogService_ListProducts_AppliesDefaults(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	products := []*entity.Product{
		{ID: uuid.New(), Name: "Phone"},
		{ID: uuid.New(), Name: "Laptop"},
	}

	expectedQuery := repository.ListProductsQuery{
		Page:  1,
		Limit: 12,
	}
	fx.productRepo.EXPECT().List(ctx, expectedQuery).Return(products, 25, nil)

	output, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{})

	require.NoError(t, err)
	assert.Equal(t, products, output.Products)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 3, output.Pages) // ceil(25 / 12)
	assert.Equal(t, int64(25), output.Total)
}

func TestCatalogService_ListProducts_PassesFilters(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	minPrice := 10.0
	maxPrice := 100.0
	input := &usecase.ListProductsInput{
		Page:     2,
		Limit:    5,
		Search:   "phone",
		Category: "Electronics",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Sort:     "price-asc",
	}

	expectedQuery := repository.ListProductsQuery{
		Page:     2,
		Limit:    5,
		Search:   "phone",
		Category: entity.CategoryElectronics,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Sort:     repository.ProductSortPriceAsc,
	}
	fx.productRepo.EXPECT().List(ctx, expectedQuery).Return([]*entity.Product{}, 11, nil)

	output, err := fx.service.ListProducts(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, 2, output.Page)
	assert.Equal(t, 3, output.Pages) // ceil(11 / 5)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.GetProduct(ctx, productID)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	adminID := uuid.New()
	input := &usecase.CreateProductInput{
		Name:        "Phone",
		Description: "A phone",
		Price:       499.99,
		Images:      []string{"/images/phone.jpg"},
		Category:    "Electronics",
		Stock:       10,
		CreatedBy:   adminID,
	}

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(ctx context.Context, product *entity.Product) {
			product.ID = uuid.New()
		}).
		Return(nil)

	product, err := fx.service.CreateProduct(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Phone", product.Name)
	assert.Equal(t, entity.CategoryElectronics, product.Category)
	assert.Equal(t, adminID, product.CreatedBy)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	input := &usecase.CreateProductInput{
		Name:     "Phone",
		Price:    499.99,
		Category: "Gadgets",
	}

	product, err := fx.service.CreateProduct(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCatalogService_UpdateProduct_PartialEdit(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	zeroStock := 0
	input := &usecase.UpdateProductInput{
		ProductID: productID,
		Name:      "Renamed",
		Stock:     &zeroStock,
	}

	existingProduct := &entity.Product{
		ID:          productID,
		Name:        "Original",
		Description: "Keep me",
		Price:       19.99,
		Stock:       5,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(existingProduct, nil)
		mockProductRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	})

	product, err := fx.service.UpdateProduct(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", product.Name)
	assert.Equal(t, "Keep me", product.Description)
	assert.Equal(t, 19.99, product.Price)
	assert.Equal(t, 0, product.Stock) // explicit zero goes through the pointer
}

func TestCatalogService_UpdateProduct_NegativeStockRejected(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	negativeStock := -1
	input := &usecase.UpdateProductInput{
		ProductID: uuid.New(),
		Stock:     &negativeStock,
	}

	product, err := fx.service.UpdateProduct(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrProductNotFound, "product not found"), func(factory *mockRepo.MockRepositoryFactory) {
		mockProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockProductRepo.EXPECT().Delete(ctx, productID).Return(repository.ErrProductNotFound)
	})

	err := fx.service.DeleteProduct(ctx, productID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_AddReview_RecomputesRatings(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	reviewerID := uuid.New()
	input := &usecase.AddReviewInput{
		ProductID: productID,
		UserID:    reviewerID,
		Rating:    2,
		Comment:   "Not great",
	}

	reviewer := &entity.User{ID: reviewerID, Name: "Test User", AvatarURL: "/uploads/avatars/test-user.png"}
	existingProduct := &entity.Product{
		ID:         productID,
		Name:       "Phone",
		Ratings:    4,
		NumReviews: 1,
		Reviews: []entity.Review{
			{ProductID: productID, UserID: uuid.New(), Rating: 4},
		},
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockProductRepo := mockRepo.NewMockProductRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockUserRepo.EXPECT().FindByID(ctx, reviewerID).Return(reviewer, nil)
		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(existingProduct, nil)
		mockProductRepo.EXPECT().
			AddReview(ctx, mock.AnythingOfType("*entity.Review")).
			Run(func(ctx context.Context, review *entity.Review) {
				assert.Equal(t, "Test User", review.Name)
				assert.Equal(t, "/uploads/avatars/test-user.png", review.AvatarURL)
				assert.Equal(t, 2, review.Rating)
			}).
			Return(nil)
		mockProductRepo.EXPECT().UpdateDerivedRatings(ctx, productID, 3.0, 2).Return(nil)
	})

	product, err := fx.service.AddReview(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, 3.0, product.Ratings) // mean of 4 and 2
	assert.Equal(t, 2, product.NumReviews)
	assert.Len(t, product.Reviews, 2)
	assert.Equal(t, "/uploads/avatars/test-user.png", product.Reviews[1].AvatarURL)
}

func TestCatalogService_AddReview_Duplicate(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	reviewerID := uuid.New()
	input := &usecase.AddReviewInput{
		ProductID: productID,
		UserID:    reviewerID,
		Rating:    5,
	}

	reviewer := &entity.User{ID: reviewerID, Name: "Test User"}
	existingProduct := &entity.Product{
		ID:         productID,
		NumReviews: 1,
		Reviews: []entity.Review{
			{ProductID: productID, UserID: reviewerID, Rating: 4},
		},
	}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrDuplicateReview, "product already reviewed"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockProductRepo := mockRepo.NewMockProductRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockUserRepo.EXPECT().FindByID(ctx, reviewerID).Return(reviewer, nil)
		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(existingProduct, nil)
	})

	product, err := fx.service.AddReview(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateReview))
}

func TestCatalogService_AddReview_RatingOutOfRange(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	input := &usecase.AddReviewInput{
		ProductID: uuid.New(),
		UserID:    uuid.New(),
		Rating:    6,
	}

	product, err := fx.service.AddReview(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
