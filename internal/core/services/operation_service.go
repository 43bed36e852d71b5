package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/adapters/persistence/repositories"
	"tricount-api/internal/core/domain"
	"tricount-api/internal/core/rules"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OperationService handles expense business logic
type OperationService struct {
	operationRepo repositories.OperationRepository
	tricountRepo  repositories.TricountRepository
}

// NewOperationService creates a new operation service
func NewOperationService(
	operationRepo repositories.OperationRepository,
	tricountRepo repositories.TricountRepository,
) *OperationService {
	return &OperationService{
		operationRepo: operationRepo,
		tricountRepo:  tricountRepo,
	}
}

// RepartitionInput is one weighted share of an operation
type RepartitionInput struct {
	UserID uint `json:"user"`
	Weight int  `json:"weight"`
}

// SaveOperationInput represents create/update input. ID zero creates.
// OperationDate uses the YYYY-MM-DD wire format.
type SaveOperationInput struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Amount        decimal.Decimal    `json:"amount"`
	OperationDate string             `json:"operation_date"`
	TricountID    uint               `json:"tricount_id"`
	InitiatorID   uint               `json:"initiator"`
	Repartitions  []RepartitionInput `json:"repartitions"`
}

// SaveOperation creates or updates an expense inside a tricount. The
// rules run against one snapshot of the tricount loaded up front, and
// every violation is reported in a single pass.
func (s *OperationService) SaveOperation(ctx context.Context, actor *domain.User, input *SaveOperationInput) (*models.OperationResponse, error) {
	row, err := s.tricountRepo.GetByID(ctx, input.TricountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTricountNotFound
		}
		return nil, err
	}
	tricount := row.ToDomain()

	var existing *domain.Operation
	var existingRow *models.Operation
	if input.ID > 0 {
		stored, err := s.operationRepo.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrOperationNotFound
			}
			return nil, err
		}
		existingRow = stored
		existing = stored.ToDomain()
	}

	// An unparseable date validates as absent.
	operationDate, _ := time.Parse(models.DateLayout, input.OperationDate)

	reps := make([]domain.Repartition, 0, len(input.Repartitions))
	for _, r := range input.Repartitions {
		reps = append(reps, domain.Repartition{UserID: r.UserID, Weight: r.Weight})
	}

	if err := rules.ValidateSaveOperation(actor, tricount, existing, rules.SaveOperationInput{
		ID:            input.ID,
		Title:         input.Title,
		Amount:        input.Amount,
		OperationDate: operationDate,
		TricountID:    input.TricountID,
		InitiatorID:   input.InitiatorID,
		Repartitions:  reps,
	}, time.Now()); err != nil {
		return nil, err
	}

	operation := &models.Operation{
		ID:            input.ID,
		Title:         strings.TrimSpace(input.Title),
		Amount:        input.Amount,
		OperationDate: operationDate,
		InitiatorID:   input.InitiatorID,
		TricountID:    input.TricountID,
	}
	if existingRow != nil {
		operation.CreatedAt = existingRow.CreatedAt
	}
	repRows := make([]models.Repartition, 0, len(reps))
	for _, r := range reps {
		repRows = append(repRows, models.Repartition{UserID: r.UserID, Weight: r.Weight})
	}

	if err := s.operationRepo.Save(ctx, operation, repRows); err != nil {
		return nil, err
	}

	saved, err := s.operationRepo.GetByID(ctx, operation.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Operation saved: %q (ID: %d, tricount: %d)", saved.Title, saved.ID, saved.TricountID)
	return saved.ToResponse(), nil
}

// DeleteOperation removes one expense. Any participant of the owning
// tricount (or an admin) may delete it.
func (s *OperationService) DeleteOperation(ctx context.Context, actor *domain.User, operationID uint) error {
	stored, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOperationNotFound
		}
		return err
	}

	row, err := s.tricountRepo.GetByID(ctx, stored.TricountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTricountNotFound
		}
		return err
	}

	if err := rules.ValidateDeleteOperation(actor, row.ToDomain()); err != nil {
		return err
	}

	if err := s.operationRepo.Delete(ctx, operationID); err != nil {
		return err
	}

	log.Printf("✅ Operation deleted: %q (ID: %d)", stored.Title, stored.ID)
	return nil
}
