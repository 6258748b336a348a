package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the domain.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{
		db: db,
	}
}

// Create persists a new address for a user.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required address information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}

	// Update the entity with generated values
	address.ID = addressM.ID
	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// Delete removes an address. The userID guard keeps users from deleting
// addresses that belong to someone else.
func (repo *addressRepository) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.AddressModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete address")
	}

	// If no rows were affected, it means the address was not found.
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// FindByUser retrieves all addresses for a user, default address first.
func (repo *addressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]entity.Address, error) {
	var addressModels []*model.AddressModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addressModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by user")
	}

	addresses := make([]entity.Address, 0, len(addressModels))
	for _, addressM := range addressModels {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// ClearDefaults unsets the default flag on every address of the user.
// Used before inserting a new default address so at most one remains.
func (repo *addressRepository) ClearDefaults(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error; err != nil {
		return errors.Wrap(err, "failed to clear default addresses")
	}

	return nil
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) entity.Address {
	if data == nil {
		return entity.Address{}
	}

	return entity.Address{
		ID:        data.ID,
		UserID:    data.UserID,
		Street:    data.Street,
		City:      data.City,
		State:     data.State,
		ZipCode:   data.ZipCode,
		Country:   data.Country,
		IsDefault: data.IsDefault,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Street:    data.Street,
		City:      data.City,
		State:     data.State,
		ZipCode:   data.ZipCode,
		Country:   data.Country,
		IsDefault: data.IsDefault,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
