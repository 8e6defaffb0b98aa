package repositories

import (
	"context"

	"github.com/google/uuid"
	"thooral.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context) ([]*entities.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmailVerificationRepository defines verification-code operations
type EmailVerificationRepository interface {
	Create(ctx context.Context, verification *entities.EmailVerification) error
	// GetLatestActive returns the most recently created unused, unexpired
	// verification for the user matching the given code.
	GetLatestActive(ctx context.Context, userID uuid.UUID, code string) (*entities.EmailVerification, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

// PasswordResetRepository defines reset-token operations
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entities.PasswordReset) error
	// GetActiveByToken returns the unused, unexpired reset record matching
	// the given token.
	GetActiveByToken(ctx context.Context, token string) (*entities.PasswordReset, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}
