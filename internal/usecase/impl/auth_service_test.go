package impl

import (
	"context"
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

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	t            *testing.T
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	service := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		t:            t,
		service:      service,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

// onExecute stubs the transaction manager to run setup against a fresh
// repository factory, invoke the transactional closure, and return returnErr.
func (f authServiceFixtures) onExecute(ctx context.Context, returnErr error, setup func(factory *mockRepo.MockRepositoryFactory)) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(f.t)
			setup(factory)

			_ = fn(factory)
		}).
		Return(returnErr)
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "secret123",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-secret", nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
		mockUserRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.User")).
			Run(func(ctx context.Context, user *entity.User) {
				user.ID = uuid.New()
			}).
			Return(nil)
	})

	fx.tokenService.EXPECT().
		GenerateToken(mock.AnythingOfType("uuid.UUID"), entity.RoleCustomer.String()).
		Return("signed-token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, "hashed-secret", output.User.PasswordHash)
	assert.Equal(t, entity.RoleCustomer, output.User.Role)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "secret123",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-secret", nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrEmailTaken, "email already registered"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(&entity.User{Email: input.Email}, nil)
	})

	output, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAuthService_Register_DuplicateOnCreate(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "race@example.com",
		Password: "secret123",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-secret", nil)

	// The pre-check passes but a concurrent registration wins the insert.
	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrEmailTaken, "email already registered"), func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
		mockUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicateEmail)
	})

	output, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "secret123",
	}

	existingUser := &entity.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed-secret",
		Role:         entity.RoleCustomer,
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(existingUser, nil)
	fx.hasher.EXPECT().Check(input.Password, existingUser.PasswordHash).Return(true)
	fx.tokenService.EXPECT().GenerateToken(existingUser.ID, entity.RoleCustomer.String()).Return("signed-token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, existingUser, output.User)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong",
	}

	existingUser := &entity.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: "hashed-secret",
		Role:         entity.RoleCustomer,
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, input.Email).Return(existingUser, nil)
	fx.hasher.EXPECT().Check(input.Password, existingUser.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
