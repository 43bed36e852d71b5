package repositories

import (
	"context"

	"gorm.io/gorm"

	"tricount-api/internal/adapters/persistence/models"
)

// operationRepository implements OperationRepository interface
type operationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates a new operation repository
func NewOperationRepository(db *gorm.DB) OperationRepository {
	return &operationRepository{db: db}
}

// GetByID loads an operation with its repartitions
func (r *operationRepository) GetByID(ctx context.Context, id uint) (*models.Operation, error) {
	var operation models.Operation
	err := r.db.WithContext(ctx).
		Preload("Repartitions", func(db *gorm.DB) *gorm.DB {
			return db.Order("repartitions.user_id")
		}).
		First(&operation, id).Error
	if err != nil {
		return nil, err
	}
	return &operation, nil
}

// Save persists the operation and replaces its whole repartition set.
// Operations and repartitions always change together; partial split
// edits do not exist.
func (r *operationRepository) Save(ctx context.Context, operation *models.Operation, repartitions []models.Repartition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Repartitions").Save(operation).Error; err != nil {
			return err
		}

		if err := tx.Where("operation_id = ?", operation.ID).Delete(&models.Repartition{}).Error; err != nil {
			return err
		}

		for i := range repartitions {
			repartitions[i].OperationID = operation.ID
		}
		if len(repartitions) == 0 {
			return nil
		}
		return tx.Create(&repartitions).Error
	})
}

// Delete removes the operation and its repartitions
func (r *operationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("operation_id = ?", id).Delete(&models.Repartition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Operation{}, id).Error
	})
}
