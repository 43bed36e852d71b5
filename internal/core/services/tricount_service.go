package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/adapters/persistence/repositories"
	"tricount-api/internal/core/balance"
	"tricount-api/internal/core/domain"
	"tricount-api/internal/core/rules"

	"gorm.io/gorm"
)

// TricountService handles tricount business logic
type TricountService struct {
	tricountRepo repositories.TricountRepository
	userRepo     repositories.UserRepository
}

// NewTricountService creates a new tricount service
func NewTricountService(
	tricountRepo repositories.TricountRepository,
	userRepo repositories.UserRepository,
) *TricountService {
	return &TricountService{
		tricountRepo: tricountRepo,
		userRepo:     userRepo,
	}
}

// SaveTricountInput represents create/update input. ID zero creates.
type SaveTricountInput struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ParticipantIDs []uint `json:"participants"`
}

// GetMyTricounts lists the tricounts the actor participates in, newest
// first. Admins see every tricount.
func (s *TricountService) GetMyTricounts(ctx context.Context, actor *domain.User) ([]*models.TricountResponse, error) {
	tricounts, err := s.tricountRepo.ListForUser(ctx, actor.ID, actor.IsAdmin())
	if err != nil {
		return nil, err
	}

	responses := make([]*models.TricountResponse, 0, len(tricounts))
	for _, t := range tricounts {
		responses = append(responses, t.ToResponse())
	}
	return responses, nil
}

// GetBalance computes the per-participant balances of one tricount.
// The actor must be admin or a participant.
func (s *TricountService) GetBalance(ctx context.Context, actor *domain.User, tricountID uint) ([]balance.Balance, error) {
	row, err := s.tricountRepo.GetByID(ctx, tricountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTricountNotFound
		}
		return nil, err
	}

	tricount := row.ToDomain()
	if err := rules.ValidateGetBalance(actor, tricount); err != nil {
		return nil, err
	}

	return balance.Compute(tricount), nil
}

// SaveTricount creates or updates a tricount. All failing rules are
// reported together; the creator is silently added to the participant
// set on create and duplicates are dropped first-wins.
func (s *TricountService) SaveTricount(ctx context.Context, actor *domain.User, input *SaveTricountInput) (*models.TricountResponse, error) {
	participantIDs := rules.DedupeParticipantIDs(input.ParticipantIDs)

	snap := rules.TricountSnapshot{}

	var existingRow *models.Tricount
	if input.ID > 0 {
		row, err := s.tricountRepo.GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrTricountNotFound
			}
			return nil, err
		}
		existingRow = row
		snap.Existing = row.ToDomain()
	} else {
		// The creator always participates in their own tricount.
		found := false
		for _, id := range participantIDs {
			if id == actor.ID {
				found = true
				break
			}
		}
		if !found {
			participantIDs = append(participantIDs, actor.ID)
		}
	}

	existingIDs, err := s.userRepo.ExistingIDs(ctx, participantIDs)
	if err != nil {
		return nil, err
	}
	snap.ExistingUserIDs = existingIDs

	creatorID := actor.ID
	if snap.Existing != nil {
		creatorID = snap.Existing.CreatorID
	}
	titleTaken, err := s.tricountRepo.TitleTaken(ctx, creatorID, input.Title, input.ID)
	if err != nil {
		return nil, err
	}
	snap.TitleTaken = titleTaken

	if err := rules.ValidateSaveTricount(actor, snap, rules.SaveTricountInput{
		ID:             input.ID,
		Title:          input.Title,
		Description:    input.Description,
		ParticipantIDs: participantIDs,
	}); err != nil {
		return nil, err
	}

	row := &models.Tricount{
		ID:        input.ID,
		Title:     strings.TrimSpace(input.Title),
		CreatorID: creatorID,
	}
	if existingRow != nil {
		row.CreatedAt = existingRow.CreatedAt
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		row.Description = &description
	}

	if err := s.tricountRepo.Save(ctx, row, participantIDs); err != nil {
		return nil, err
	}

	saved, err := s.tricountRepo.GetByID(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Tricount saved: %q (ID: %d)", saved.Title, saved.ID)
	return saved.ToResponse(), nil
}

// DeleteTricount removes a tricount with everything it owns. Only the
// creator or an admin may delete.
func (s *TricountService) DeleteTricount(ctx context.Context, actor *domain.User, tricountID uint) error {
	row, err := s.tricountRepo.GetByID(ctx, tricountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTricountNotFound
		}
		return err
	}

	if err := rules.ValidateDeleteTricount(actor, row.ToDomain()); err != nil {
		return err
	}

	if err := s.tricountRepo.Delete(ctx, tricountID); err != nil {
		return err
	}

	log.Printf("✅ Tricount deleted: %q (ID: %d)", row.Title, row.ID)
	return nil
}

// IsTitleAvailable reports whether the normalized title is free among
// the tricounts of the relevant creator: the actor on create, the
// stored creator when tricountID is non-zero, even when that id names
// no tricount (creator 0 then, nobody's titles, always available).
// The empty title counts as available.
func (s *TricountService) IsTitleAvailable(ctx context.Context, actorID uint, title string, tricountID uint) (bool, error) {
	if rules.Normalize(title) == "" {
		return true, nil
	}

	creatorID := actorID
	if tricountID > 0 {
		stored, err := s.tricountRepo.CreatorID(ctx, tricountID)
		if err != nil {
			return false, err
		}
		creatorID = stored
	}

	taken, err := s.tricountRepo.TitleTaken(ctx, creatorID, title, tricountID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
