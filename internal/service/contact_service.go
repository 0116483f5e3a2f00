package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/leadthebusiness/platform-api/internal/mailer"
	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/pkg/config"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
)

// ContactService relays contact-form submissions to the team inbox.
type ContactService struct {
	mailer    mailer.Mailer
	from      string
	to        []string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs ContactService.
func NewContactService(m mailer.Mailer, cfg config.MailConfig, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{mailer: m, from: cfg.From, to: cfg.To, validator: validate, logger: logger}
}

// Relay validates the submission and forwards it by email. The sender's
// address goes into the body, not the envelope, so replies reach them via
// copy-paste rather than header spoofing.
func (s *ContactService) Relay(ctx context.Context, req models.ContactRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}

	msg := mailer.Message{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("New contact form submission from %s", req.FullName),
		HTML:    renderContactBody(req),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("contact relay failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to send contact email")
	}
	s.logger.Info("contact form relayed", zap.String("email", req.Email))
	return nil
}

func renderContactBody(req models.ContactRequest) string {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>")
	b.WriteString(fmt.Sprintf("<p><strong>Name:</strong> %s</p>", html.EscapeString(req.FullName)))
	b.WriteString(fmt.Sprintf("<p><strong>Email:</strong> %s</p>", html.EscapeString(req.Email)))
	if req.Phone != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Phone:</strong> %s</p>", html.EscapeString(req.Phone)))
	}
	b.WriteString(fmt.Sprintf("<p><strong>Message:</strong></p><p>%s</p>", html.EscapeString(req.Message)))
	return b.String()
}
