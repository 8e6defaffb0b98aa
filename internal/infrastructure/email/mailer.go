package email

import (
	"context"
	"fmt"
	"net/url"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
	"thooral.backend/pkg/logger"
)

// ResendMailer delivers verification and reset emails through Resend
type ResendMailer struct {
	client      *resend.Client
	sender      string
	frontendURL string
}

// NewResendMailer creates a new Resend-backed mailer
func NewResendMailer(apiKey, sender, frontendURL string) *ResendMailer {
	return &ResendMailer{
		client:      resend.NewClient(apiKey),
		sender:      sender,
		frontendURL: frontendURL,
	}
}

// SendVerificationEmail sends the 6-digit verification code
func (m *ResendMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{to},
		Subject: "Verify Your Email - Thooral",
		Html: fmt.Sprintf(`<h1>Email Verification</h1>
<p>Thank you for registering with Thooral. Please use the verification code below to verify your email address:</p>
<h2 style="letter-spacing: 5px;">%s</h2>
<p>If you did not register for a Thooral account, please ignore this email.</p>`, code),
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// resetURL builds the frontend reset link with the token and email escaped
func (m *ResendMailer) resetURL(to, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s&email=%s", m.frontendURL, url.QueryEscape(token), url.QueryEscape(to))
}

// SendPasswordResetEmail sends the reset link built from the frontend base URL
func (m *ResendMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	resetURL := m.resetURL(to, token)

	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{to},
		Subject: "Reset Your Password - Thooral",
		Html: fmt.Sprintf(`<h1>Password Reset Request</h1>
<p>You requested to reset your password. Please use the link below:</p>
<p><a href="%s">Reset Password</a></p>
<p>If you did not request a password reset, please ignore this email.</p>`, resetURL),
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// LogMailer logs instead of sending. Used when no email API key is
// configured, typically in local development.
type LogMailer struct{}

func (LogMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	logger.Info(ctx, "verification email (not sent, no API key)", zap.String("to", to), zap.String("code", code))
	return nil
}

func (LogMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	logger.Info(ctx, "password reset email (not sent, no API key)", zap.String("to", to))
	return nil
}
