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

// userAdminServiceFixtures holds all test dependencies for user admin service tests.
type userAdminServiceFixtures struct {
	t         *testing.T
	service   usecase.UserAdminUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
}

func createTestUserAdminService(t *testing.T) userAdminServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewUserAdminService(UserAdminServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		Logger:    newDiscardLogger(),
	})

	return userAdminServiceFixtures{
		t:         t,
		service:   service,
		txManager: txManager,
		userRepo:  userRepo,
	}
}

// onExecute stubs the transaction manager to run setup against a fresh
// repository factory, invoke the transactional closure, and return returnErr.
func (f userAdminServiceFixtures) onExecute(ctx context.Context, returnErr error, setup func(factory *mockRepo.MockRepositoryFactory)) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(f.t)
			setup(factory)

			_ = fn(factory)
		}).
		Return(returnErr)
}

func TestUserAdminService_ListUsers_Success(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	expectedUsers := []*entity.User{
		{ID: uuid.New(), Email: "a@example.com"},
		{ID: uuid.New(), Email: "b@example.com"},
	}

	fx.userRepo.EXPECT().List(ctx).Return(expectedUsers, nil)

	users, err := fx.service.ListUsers(ctx)

	require.NoError(t, err)
	assert.Equal(t, expectedUsers, users)
}

func TestUserAdminService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetUser(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserAdminService_UpdateUser_PromotesToAdmin(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.AdminUpdateUserInput{
		UserID: userID,
		Role:   entity.RoleAdmin,
	}

	existingUser := &entity.User{
		ID:    userID,
		Name:  "Test User",
		Email: "test@example.com",
		Role:  entity.RoleCustomer,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(existingUser, nil)
		mockUserRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	})

	user, err := fx.service.UpdateUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, "Test User", user.Name) // untouched fields survive
}

func TestUserAdminService_UpdateUser_UnknownRole(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	input := &usecase.AdminUpdateUserInput{
		UserID: uuid.New(),
		Role:   "superuser",
	}

	user, err := fx.service.UpdateUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserAdminService_UpdateUser_EmailTaken(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.AdminUpdateUserInput{
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

	user, err := fx.service.UpdateUser(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestUserAdminService_DeleteUser_Success(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().Delete(ctx, userID).Return(nil)
	})

	err := fx.service.DeleteUser(ctx, userID)

	require.NoError(t, err)
}

func TestUserAdminService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestUserAdminService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrUserNotFound, "user not found"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().Delete(ctx, userID).Return(repository.ErrUserNotFound)
	})

	err := fx.service.DeleteUser(ctx, userID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
