package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"userhub/internal/config"
)

// Mailer dispatches account emails. Implementations must not be
// assumed reliable; callers decide what a failed send means.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

// SMTPMailer sends mail through an SMTP relay using go-mail.
type SMTPMailer struct {
	cfg         *config.Config
	frontendURL string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer from config.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.EmailFrom == "" {
		return nil, fmt.Errorf("email from address is required")
	}
	return &SMTPMailer{
		cfg:         cfg,
		frontendURL: strings.TrimSuffix(cfg.FrontendURL, "/"),
	}, nil
}

// SendVerificationEmail mails the email verification link.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"Thank you for registering!\n\n"+
			"Please open the link below to verify your email address:\n\n%s\n\n"+
			"This link will expire in 24 hours.\n",
		verifyURL,
	)
	return m.send(ctx, to, "Email Verification", body)
}

// SendPasswordResetEmail mails the password reset link.
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"You requested to reset your password.\n\n"+
			"Open the link below to proceed:\n\n%s\n\n"+
			"This link will expire in 1 hour.\n"+
			"If you didn't request this, please ignore this email.\n",
		resetURL,
	)
	return m.send(ctx, to, "Password Reset Request", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.EmailFrom); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.SMTPUser != "" && m.cfg.SMTPPassword != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
