package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"thooral.backend/internal/domain/entities"
	domainerrors "thooral.backend/internal/domain/errors"
	"thooral.backend/internal/interfaces/http/response"
	"thooral.backend/internal/usecases"
	"thooral.backend/pkg/jwt"
	"thooral.backend/pkg/utils"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("All fields are required and email must be valid"))
		return
	}

	if input.Password != input.ConfirmPassword {
		response.Error(c, domainerrors.BadRequest("Passwords do not match"))
		return
	}
	if !utils.IsValidPassword(input.Password) {
		response.Error(c, domainerrors.BadRequest(utils.PasswordPolicyMessage))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("User with this email already exists"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully. Please check your email for verification code.", gin.H{
		"userId": user.ID,
		"email":  user.Email,
	})
}

// VerifyEmail handles email verification
// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var input entities.VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email and verification code are required"))
		return
	}

	if err := h.authUsecase.VerifyEmail(c.Request.Context(), input.Email, input.Code); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found"))
		case errors.Is(err, domainerrors.ErrCodeInvalid):
			response.Error(c, domainerrors.BadRequest("Invalid or expired verification code"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, "Email verified successfully. You can now log in.", nil)
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email and password are required"))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidCredentials):
			// Identical message whether the user is missing or the
			// password is wrong.
			response.Error(c, domainerrors.Unauthorized("Invalid email or password"))
		case errors.Is(err, domainerrors.ErrEmailNotVerified):
			response.Error(c, domainerrors.Unauthorized("Please verify your email before logging in"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, "Login successful", authResponse)
}

// ForgotPassword handles a password reset request. The success response is
// identical whether or not the email belongs to an account.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email is required"))
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "If an account with that email exists, a password reset link will be sent", nil)
}

// ResetPassword handles a password reset
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Token, password, and confirm password are required"))
		return
	}

	if input.Password != input.ConfirmPassword {
		response.Error(c, domainerrors.BadRequest("Passwords do not match"))
		return
	}
	if !utils.IsValidPassword(input.Password) {
		response.Error(c, domainerrors.BadRequest(utils.PasswordPolicyMessage))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), input.Token, input.Password); err != nil {
		if errors.Is(err, domainerrors.ErrResetTokenInvalid) {
			response.Error(c, domainerrors.BadRequest("Invalid or expired token"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successful. You can now log in with your new password.", nil)
}

// RefreshToken handles access token refresh
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input entities.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Refresh token is required"))
		return
	}

	accessToken, err := h.authUsecase.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrExpiredToken):
			response.Error(c, domainerrors.Unauthorized("Invalid or expired refresh token"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, "Access token refreshed successfully", gin.H{
		"accessToken": accessToken,
	})
}
