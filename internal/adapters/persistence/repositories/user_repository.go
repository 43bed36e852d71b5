package repositories

import (
	"context"

	"gorm.io/gorm"

	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/core/rules"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by normalized email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(TRIM(email)) = ?", rules.Normalize(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List lists all users ordered by case-insensitive name
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Order("LOWER(name)").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ExistingIDs returns which of the candidate ids reference a user
func (r *userRepository) ExistingIDs(ctx context.Context, ids []uint) (map[uint]struct{}, error) {
	existing := make(map[uint]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	var found []uint
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// EmailTaken checks if another user already uses the email
func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("LOWER(TRIM(email)) = ? AND id <> ?", rules.Normalize(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

// NameTaken checks if another user already uses the display name
func (r *userRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("LOWER(TRIM(name)) = ? AND id <> ?", rules.Normalize(name), excludeID).
		Count(&count).Error
	return count > 0, err
}
