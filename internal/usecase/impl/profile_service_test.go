package impl

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	t           *testing.T
	service     usecase.ProfileUsecase
	txManager   *mockRepo.MockTransactionManager
	userRepo    *mockRepo.MockUserRepository
	hasher      *mockService.MockPasswordHasher
	avatarStore *mockService.MockAvatarStore
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	avatarStore := mockService.NewMockAvatarStore(t)

	service := NewProfileService(ProfileServiceParams{
		TxManager:   txManager,
		UserRepo:    userRepo,
		Hasher:      hasher,
		AvatarStore: avatarStore,
		Logger:      newDiscardLogger(),
	})

	return profileServiceFixtures{
		t:           t,
		service:     service,
		txManager:   txManager,
		userRepo:    userRepo,
		hasher:      hasher,
		avatarStore: avatarStore,
	}
}

// onExecute stubs the transaction manager to run setup against a fresh
// repository factory, invoke the transactional closure, and return returnErr.
func (f profileServiceFixtures) onExecute(ctx context.Context, returnErr error, setup func(factory *mockRepo.MockRepositoryFactory)) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(f.t)
			setup(factory)

			_ = fn(factory)
		}).
		Return(returnErr)
}

func TestProfileService_GetProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	expectedUser := &entity.User{
		ID:    userID,
		Email: "test@example.com",
		Name:  "Test User",
	}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(expectedUser, nil)

	user, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expectedUser, user)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.UpdateProfileInput{
		UserID: userID,
		Name:   "New Name",
	}

	existingUser := &entity.User{
		ID:    userID,
		Name:  "Old Name",
		Email: "test@example.com",
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	user, err := fx.service.UpdateProfile(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestProfileService_UpdateProfile_PasswordRehashed(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.UpdateProfileInput{
		UserID:   userID,
		Password: "new-secret",
	}

	existingUser := &entity.User{
		ID:           userID,
		PasswordHash: "old-hash",
	}

	fx.hasher.EXPECT().Hash("new-secret").Return("new-hash", nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	user, err := fx.service.UpdateProfile(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
}

func TestProfileService_UpdateProfile_WithAvatarUpload(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	body := strings.NewReader("png-bytes")
	input := &usecase.UpdateProfileInput{
		UserID: userID,
		Avatar: &usecase.AvatarUpload{
			Filename:    "avatar.png",
			ContentType: "image/png",
			Body:        body,
		},
	}

	existingUser := &entity.User{ID: userID}

	fx.avatarStore.EXPECT().
		Save(ctx, userID, "avatar.png", "image/png", body).
		Return("/uploads/avatars/avatar.png", nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	user, err := fx.service.UpdateProfile(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/avatar.png", user.AvatarURL)
}

func TestProfileService_UpdateProfile_EmailTaken(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.UpdateProfileInput{
		UserID: userID,
		Email:  "taken@example.com",
	}

	existingUser := &entity.User{ID: userID, Email: "old@example.com"}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrEmailTaken, "email already registered"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicateEmail)
	})

	user, err := fx.service.UpdateProfile(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestProfileService_AddAddress_DefaultClearsPrevious(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.AddAddressInput{
		UserID:    userID,
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "USA",
		IsDefault: true,
	}

	savedAddresses := []entity.Address{
		{UserID: userID, Street: "1 Main St", IsDefault: true},
		{UserID: userID, Street: "2 Oak Ave", IsDefault: false},
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().ClearDefaults(ctx, userID).Return(nil)
		mockAddressRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Address")).
			Run(func(ctx context.Context, address *entity.Address) {
				assert.True(t, address.IsDefault)
				assert.Equal(t, "1 Main St", address.Street)
			}).
			Return(nil)
		mockAddressRepo.EXPECT().FindByUser(ctx, userID).Return(savedAddresses, nil)
	})

	addresses, err := fx.service.AddAddress(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, savedAddresses, addresses)
}

func TestProfileService_AddAddress_NonDefaultKeepsExistingDefault(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.AddAddressInput{
		UserID:  userID,
		Street:  "2 Oak Ave",
		City:    "Springfield",
		Country: "USA",
	}

	// ClearDefaults must not be called for a non-default address; the mock
	// fails the test on any unexpected call.
	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
		mockAddressRepo.EXPECT().FindByUser(ctx, userID).Return([]entity.Address{{UserID: userID, Street: "2 Oak Ave"}}, nil)
	})

	addresses, err := fx.service.AddAddress(ctx, input)

	require.NoError(t, err)
	assert.Len(t, addresses, 1)
}

func TestProfileService_DeleteAddress_NotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrAddressNotFound, "address not found"), func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().Delete(ctx, userID, addressID).Return(repository.ErrAddressNotFound)
	})

	addresses, err := fx.service.DeleteAddress(ctx, userID, addressID)

	assert.Error(t, err)
	assert.Nil(t, addresses)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestProfileService_ToggleWishlist_AddsMissingProduct(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	userBefore := &entity.User{ID: userID}
	userAfter := &entity.User{ID: userID, Wishlist: []uuid.UUID{productID}}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockProductRepo := mockRepo.NewMockProductRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(userBefore, nil).Once()
		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(&entity.Product{ID: productID}, nil)
		mockUserRepo.EXPECT().AddWishlistItem(ctx, userID, productID).Return(nil)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(userAfter, nil).Once()
	})

	wishlist, err := fx.service.ToggleWishlist(ctx, userID, productID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{productID}, wishlist)
}

func TestProfileService_ToggleWishlist_RemovesPresentProduct(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	userBefore := &entity.User{ID: userID, Wishlist: []uuid.UUID{productID}}
	userAfter := &entity.User{ID: userID, Wishlist: []uuid.UUID{}}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockProductRepo := mockRepo.NewMockProductRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(userBefore, nil).Once()
		mockUserRepo.EXPECT().RemoveWishlistItem(ctx, userID, productID).Return(nil)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(userAfter, nil).Once()
	})

	wishlist, err := fx.service.ToggleWishlist(ctx, userID, productID)

	require.NoError(t, err)
	assert.Empty(t, wishlist)
}

func TestProfileService_ToggleWishlist_ProductNotFound(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrProductNotFound, "product not found"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockProductRepo := mockRepo.NewMockProductRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().ProductRepo().Return(mockProductRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockProductRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)
	})

	wishlist, err := fx.service.ToggleWishlist(ctx, userID, productID)

	assert.Error(t, err)
	assert.Nil(t, wishlist)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}
