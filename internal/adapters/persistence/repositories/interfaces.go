package repositories

import (
	"context"

	"tricount-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail matches the trimmed, case-folded email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns all users ordered by case-insensitive name.
	List(ctx context.Context) ([]*models.User, error)
	// ExistingIDs returns which of the candidate ids reference a user.
	ExistingIDs(ctx context.Context, ids []uint) (map[uint]struct{}, error)
	// EmailTaken checks the normalized email against all users except
	// excludeID (0 excludes nobody).
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	// NameTaken is the same check for the display name.
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
}

// TricountRepository defines tricount repository interface
type TricountRepository interface {
	// GetByID loads a tricount with participants, operations and their
	// repartitions eagerly loaded. Returns gorm.ErrRecordNotFound when
	// missing.
	GetByID(ctx context.Context, id uint) (*models.Tricount, error)
	// ListForUser returns the tricounts the user participates in, newest
	// first. Admins see every tricount.
	ListForUser(ctx context.Context, userID uint, isAdmin bool) ([]*models.Tricount, error)
	// Save persists the tricount and replaces its participant set
	// atomically.
	Save(ctx context.Context, tricount *models.Tricount, participantIDs []uint) error
	// Delete removes the tricount and cascades to its operations,
	// repartitions and participations.
	Delete(ctx context.Context, id uint) error
	// CreatorID returns the stored creator id, 0 when the tricount does
	// not exist.
	CreatorID(ctx context.Context, id uint) (uint, error)
	// TitleTaken checks the normalized title among tricounts of the same
	// creator, excluding excludeID.
	TitleTaken(ctx context.Context, creatorID uint, title string, excludeID uint) (bool, error)
}

// OperationRepository defines operation repository interface
type OperationRepository interface {
	// GetByID loads an operation with its repartitions.
	GetByID(ctx context.Context, id uint) (*models.Operation, error)
	// Save persists the operation and replaces its whole repartition set
	// in one transaction.
	Save(ctx context.Context, operation *models.Operation, repartitions []models.Repartition) error
	Delete(ctx context.Context, id uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
