package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thooral.backend/pkg/utils"
)

func TestRegister_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		body        gin.H
		wantMessage string
	}{
		{
			name:        "missing fields",
			body:        gin.H{"email": "user@example.com"},
			wantMessage: "All fields are required and email must be valid",
		},
		{
			name: "invalid email",
			body: gin.H{
				"fullName": "Test User", "email": "not-an-email", "schoolName": "School",
				"password": "Passw0rd", "confirmPassword": "Passw0rd",
			},
			wantMessage: "All fields are required and email must be valid",
		},
		{
			name: "password mismatch",
			body: gin.H{
				"fullName": "Test User", "email": "user@example.com", "schoolName": "School",
				"password": "Passw0rd", "confirmPassword": "Different1",
			},
			wantMessage: "Passwords do not match",
		},
		{
			name: "weak password",
			body: gin.H{
				"fullName": "Test User", "email": "user@example.com", "schoolName": "School",
				"password": "weak", "confirmPassword": "weak",
			},
			wantMessage: utils.PasswordPolicyMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := env.do(t, http.MethodPost, "/api/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	body := gin.H{
		"fullName": "Test User", "email": "dup@example.com", "schoolName": "School",
		"password": "Passw0rd", "confirmPassword": "Passw0rd",
	}

	w, _ := env.do(t, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := env.do(t, http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User with this email already exists", resp.Message)
}

func TestVerifyEmail_Errors(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"fullName": "Test User", "email": "user@example.com", "schoolName": "School",
		"password": "Passw0rd", "confirmPassword": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := env.do(t, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "ghost@example.com", "code": "123456",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", resp.Message)

	w, resp = env.do(t, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "user@example.com", "code": "000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired verification code", resp.Message)
}

func TestVerifyEmail_CodeIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"fullName": "Test User", "email": "user@example.com", "schoolName": "School",
		"password": "Passw0rd", "confirmPassword": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	code := env.mailer.codeFor("user@example.com")

	w, _ = env.do(t, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "user@example.com", "code": code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.do(t, http.MethodPost, "/api/auth/verify-email", gin.H{
		"email": "user@example.com", "code": code,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired verification code", resp.Message)
}

func TestLogin_FailureResponses(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"fullName": "Test User", "email": "user@example.com", "schoolName": "School",
		"password": "Passw0rd", "confirmPassword": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// An unregistered email and a wrong password must be indistinguishable.
	w1, resp1 := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "ghost@example.com", "password": "Passw0rd",
	})
	w2, resp2 := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "user@example.com", "password": "WrongPass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, "Invalid email or password", resp1.Message)
	assert.Equal(t, resp1.Message, resp2.Message)

	// Correct password on an unverified account gets its own message.
	w3, resp3 := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "user@example.com", "password": "Passw0rd",
	})
	assert.Equal(t, http.StatusUnauthorized, w3.Code)
	assert.Equal(t, "Please verify your email before logging in", resp3.Message)
}

func TestForgotPassword_ResponseDoesNotLeakAccountExistence(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerifiedUser(t, "user@example.com", "Passw0rd")

	w1, resp1 := env.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "user@example.com"})
	w2, resp2 := env.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "ghost@example.com"})

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, resp1.Message, resp2.Message)

	// Only the real account got an email.
	assert.NotEmpty(t, env.mailer.resetTokenFor("user@example.com"))
	assert.Empty(t, env.mailer.resetTokenFor("ghost@example.com"))
}

func TestResetPassword_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerifiedUser(t, "user@example.com", "Passw0rd")

	w, _ := env.do(t, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	token := env.mailer.resetTokenFor("user@example.com")
	require.NotEmpty(t, token)

	w, resp := env.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token": token, "password": "NewPass1", "confirmPassword": "NewPass1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)

	// Old password is out, new one works.
	w, _ = env.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "user@example.com", "password": "Passw0rd"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "user@example.com", "password": "NewPass1"})
	assert.Equal(t, http.StatusOK, w.Code)

	// The token was consumed by the first reset.
	w, resp = env.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token": token, "password": "OtherPass1", "confirmPassword": "OtherPass1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", resp.Message)
}

func TestResetPassword_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token": "abc", "password": "NewPass1", "confirmPassword": "Other1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords do not match", resp.Message)

	w, resp = env.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token": "abc", "password": "weak", "confirmPassword": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.PasswordPolicyMessage, resp.Message)

	w, resp = env.do(t, http.MethodPost, "/api/auth/reset-password", gin.H{
		"token": "unknown-token", "password": "NewPass1", "confirmPassword": "NewPass1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired token", resp.Message)
}

func TestRefreshToken_Flow(t *testing.T) {
	env := newTestEnv(t)
	accessToken, refreshToken := env.registerVerifiedUser(t, "user@example.com", "Passw0rd")

	w, resp := env.do(t, http.MethodPost, "/api/auth/refresh", gin.H{"refreshToken": refreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)

	claims, err := env.tokens.VerifyAccessToken(data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)

	// An access token is not accepted in place of a refresh token.
	w, resp = env.do(t, http.MethodPost, "/api/auth/refresh", gin.H{"refreshToken": accessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired refresh token", resp.Message)

	w, resp = env.do(t, http.MethodPost, "/api/auth/refresh", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Refresh token is required", resp.Message)
}
