package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"thooral.backend/internal/domain/entities"
	domainerrors "thooral.backend/internal/domain/errors"
	"thooral.backend/internal/domain/repositories"
	"thooral.backend/pkg/crypto"
	"thooral.backend/pkg/jwt"
	"thooral.backend/pkg/logger"
	"thooral.backend/pkg/redis"
)

// Mailer delivers verification codes and reset links
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

// AuthUsecase handles the account authentication lifecycle
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	verifRepo    repositories.EmailVerificationRepository
	resetRepo    repositories.PasswordResetRepository
	uow          repositories.UnitOfWork
	tokenService *jwt.TokenService
	mailer       Mailer
	cooldown     *redis.SendCooldown
	codeExpiry   time.Duration
	resetExpiry  time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	verifRepo repositories.EmailVerificationRepository,
	resetRepo repositories.PasswordResetRepository,
	uow repositories.UnitOfWork,
	tokenService *jwt.TokenService,
	mailer Mailer,
	cooldown *redis.SendCooldown,
	codeExpiry, resetExpiry time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		verifRepo:    verifRepo,
		resetRepo:    resetRepo,
		uow:          uow,
		tokenService: tokenService,
		mailer:       mailer,
		cooldown:     cooldown,
		codeExpiry:   codeExpiry,
		resetExpiry:  resetExpiry,
	}
}

// Register creates an unverified user, stores a verification code, and
// sends the code by email. The email send is best effort: a delivery
// failure is logged but does not fail registration.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FullName:     input.FullName,
		Email:        input.Email,
		SchoolName:   input.SchoolName,
		PasswordHash: passwordHash,
		IsVerified:   false,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}
	verification := &entities.EmailVerification{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(u.codeExpiry),
	}
	if err := u.verifRepo.Create(ctx, verification); err != nil {
		return nil, err
	}

	if u.cooldown.Allow(ctx, "verify", user.Email) {
		if err := u.mailer.SendVerificationEmail(ctx, user.Email, code); err != nil {
			logger.Warn(ctx, "verification email delivery failed", zap.String("email", user.Email), zap.Error(err))
		}
	}

	return user, nil
}

// VerifyEmail consumes the most recent active verification code for the
// user and flips the verified flag. Both writes happen in one transaction.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	verification, err := u.verifRepo.GetLatestActive(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrCodeInvalid
		}
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.verifRepo.MarkUsed(ctx, verification.ID); err != nil {
			return err
		}
		return u.userRepo.SetVerified(ctx, user.ID)
	})
}

// Login authenticates a user and returns a token pair. A missing user and
// a wrong password both surface as ErrInvalidCredentials so the response
// cannot be used to probe which emails are registered.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, domainerrors.ErrEmailNotVerified
	}

	tokenPair, err := u.tokenService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// ForgotPassword stores a reset token and emails the reset link. It returns
// nil whether or not the email is registered; only the registered case
// creates a record and triggers a send.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := crypto.GenerateResetToken()
	if err != nil {
		return err
	}
	reset := &entities.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(u.resetExpiry),
	}
	if err := u.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	if u.cooldown.Allow(ctx, "reset", user.Email) {
		if err := u.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
			logger.Warn(ctx, "password reset email delivery failed", zap.String("email", user.Email), zap.Error(err))
		}
	}

	return nil
}

// ResetPassword consumes an active reset token and overwrites the user's
// password hash. Both writes happen in one transaction.
func (u *AuthUsecase) ResetPassword(ctx context.Context, token, password string) error {
	reset, err := u.resetRepo.GetActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}
		return err
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
			return err
		}
		return u.userRepo.SetPasswordHash(ctx, reset.UserID, passwordHash)
	})
}

// Refresh exchanges a valid refresh token for a new access token
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := u.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}

	return u.tokenService.GenerateAccessToken(user.ID, user.Email)
}
