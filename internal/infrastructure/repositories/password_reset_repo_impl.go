package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"thooral.backend/internal/domain/entities"
	domainerrors "thooral.backend/internal/domain/errors"
	"thooral.backend/internal/infrastructure/models"
)

// PasswordResetRepository implements reset-token operations
type PasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create stores a new reset token
func (r *PasswordResetRepository) Create(ctx context.Context, reset *entities.PasswordReset) error {
	if reset.ID == uuid.Nil {
		reset.ID = uuid.New()
	}
	m := &models.PasswordReset{
		ID:        reset.ID,
		UserID:    reset.UserID,
		Token:     reset.Token,
		ExpiresAt: reset.ExpiresAt,
		IsUsed:    reset.IsUsed,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	reset.CreatedAt = m.CreatedAt
	return nil
}

// GetActiveByToken returns the unused, unexpired reset record for the token
func (r *PasswordResetRepository) GetActiveByToken(ctx context.Context, token string) (*entities.PasswordReset, error) {
	var m models.PasswordReset
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("token = ? AND is_used = ? AND expires_at > ?", token, false, time.Now()).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.PasswordReset{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		IsUsed:    m.IsUsed,
		CreatedAt: m.CreatedAt,
	}, nil
}

// MarkUsed consumes a reset token. A token already marked used is reported
// as not found.
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
