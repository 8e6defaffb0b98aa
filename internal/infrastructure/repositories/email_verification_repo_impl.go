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

// EmailVerificationRepository implements verification-code operations
type EmailVerificationRepository struct {
	db *gorm.DB
}

// NewEmailVerificationRepository creates a new email verification repository
func NewEmailVerificationRepository(db *gorm.DB) *EmailVerificationRepository {
	return &EmailVerificationRepository{db: db}
}

// Create stores a new verification code
func (r *EmailVerificationRepository) Create(ctx context.Context, verification *entities.EmailVerification) error {
	if verification.ID == uuid.Nil {
		verification.ID = uuid.New()
	}
	m := &models.EmailVerification{
		ID:        verification.ID,
		UserID:    verification.UserID,
		Code:      verification.Code,
		ExpiresAt: verification.ExpiresAt,
		IsUsed:    verification.IsUsed,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	verification.CreatedAt = m.CreatedAt
	return nil
}

// GetLatestActive returns the most recently created unused, unexpired
// verification for the user matching the given code. Most recent wins on ties.
func (r *EmailVerificationRepository) GetLatestActive(ctx context.Context, userID uuid.UUID, code string) (*entities.EmailVerification, error) {
	var m models.EmailVerification
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND code = ? AND is_used = ? AND expires_at > ?", userID, code, false, time.Now()).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.EmailVerification{
		ID:        m.ID,
		UserID:    m.UserID,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		IsUsed:    m.IsUsed,
		CreatedAt: m.CreatedAt,
	}, nil
}

// MarkUsed consumes a verification code. A code already marked used is
// reported as not found.
func (r *EmailVerificationRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.EmailVerification{}).
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
