package usecases

import (
	"context"

	"github.com/google/uuid"
	"thooral.backend/internal/domain/entities"
	domainerrors "thooral.backend/internal/domain/errors"
	"thooral.backend/internal/domain/repositories"
)

// UserUsecase handles user profile operations
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// List returns all users, newest first
func (u *UserUsecase) List(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.List(ctx)
}

// GetByID returns a single user
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// UpdateProfile updates the caller's full name and/or school name
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	if !input.FullName.Valid && !input.SchoolName.Valid {
		return nil, domainerrors.ErrInvalidInput
	}
	return u.userRepo.UpdateProfile(ctx, id, input)
}

// Delete removes a user
func (u *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}
