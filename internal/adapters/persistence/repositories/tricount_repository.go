package repositories

import (
	"context"

	"gorm.io/gorm"

	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/core/rules"
)

// tricountRepository implements TricountRepository interface
type tricountRepository struct {
	db *gorm.DB
}

// NewTricountRepository creates a new tricount repository
func NewTricountRepository(db *gorm.DB) TricountRepository {
	return &tricountRepository{db: db}
}

// GetByID loads a tricount with participants and operations (with their
// repartitions) eagerly loaded
func (r *tricountRepository) GetByID(ctx context.Context, id uint) (*models.Tricount, error) {
	var tricount models.Tricount
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Operations").
		Preload("Operations.Repartitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("repartitions.user_id")
		}).
		First(&tricount, id).Error
	if err != nil {
		return nil, err
	}
	return &tricount, nil
}

// ListForUser returns the user's tricounts newest first; admins see all
func (r *tricountRepository) ListForUser(ctx context.Context, userID uint, isAdmin bool) ([]*models.Tricount, error) {
	query := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Operations").
		Preload("Operations.Repartitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("repartitions.user_id")
		}).
		Order("created_at DESC")

	if !isAdmin {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.Participation{}).Select("tricount_id").Where("user_id = ?", userID),
		)
	}

	var tricounts []*models.Tricount
	if err := query.Find(&tricounts).Error; err != nil {
		return nil, err
	}
	return tricounts, nil
}

// Save persists the tricount and replaces its participant set in one
// transaction
func (r *tricountRepository) Save(ctx context.Context, tricount *models.Tricount, participantIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Participants", "Operations").Save(tricount).Error; err != nil {
			return err
		}

		if err := tx.Where("tricount_id = ?", tricount.ID).Delete(&models.Participation{}).Error; err != nil {
			return err
		}

		participations := make([]models.Participation, 0, len(participantIDs))
		for _, userID := range participantIDs {
			participations = append(participations, models.Participation{
				TricountID: tricount.ID,
				UserID:     userID,
			})
		}
		if len(participations) == 0 {
			return nil
		}
		return tx.Create(&participations).Error
	})
}

// Delete removes the tricount and cascades to operations, repartitions
// and participations
func (r *tricountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		operationIDs := tx.Model(&models.Operation{}).Select("id").Where("tricount_id = ?", id)

		if err := tx.Where("operation_id IN (?)", operationIDs).Delete(&models.Repartition{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tricount_id = ?", id).Delete(&models.Operation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tricount_id = ?", id).Delete(&models.Participation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tricount{}, id).Error
	})
}

// CreatorID returns the stored creator id, 0 when the tricount is
// missing
func (r *tricountRepository) CreatorID(ctx context.Context, id uint) (uint, error) {
	var creatorID uint
	err := r.db.WithContext(ctx).
		Model(&models.Tricount{}).
		Where("id = ?", id).
		Pluck("creator_id", &creatorID).Error
	return creatorID, err
}

// TitleTaken checks the normalized title among tricounts of the same
// creator
func (r *tricountRepository) TitleTaken(ctx context.Context, creatorID uint, title string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tricount{}).
		Where("creator_id = ? AND id <> ? AND LOWER(TRIM(title)) = ?", creatorID, excludeID, rules.Normalize(title)).
		Count(&count).Error
	return count > 0, err
}
