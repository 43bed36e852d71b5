package services

import (
	"context"
	"errors"
	"strings"

	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/adapters/persistence/repositories"
	"tricount-api/internal/core/domain"
	"tricount-api/internal/core/rules"

	"gorm.io/gorm"
)

// UserService handles user lookup business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every user, ordered by name
func (s *UserService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

// GetUser returns one user by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// IsEmailAvailable reports whether no user holds the email. Comparison
// ignores case and surrounding whitespace. The empty email counts as
// available.
func (s *UserService) IsEmailAvailable(ctx context.Context, email string, excludeID uint) (bool, error) {
	email = rules.Normalize(email)
	if email == "" {
		return true, nil
	}

	taken, err := s.userRepo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// IsFullNameAvailable is the same availability probe for display names
func (s *UserService) IsFullNameAvailable(ctx context.Context, fullName string, excludeID uint) (bool, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return true, nil
	}

	taken, err := s.userRepo.NameTaken(ctx, fullName, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
