package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/mailer"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/validation"
)

type ContactInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Type  string `json:"type" validate:"required"`
}

// ContactService forwards enquiries from the public contact form to the
// site owner's mailbox.
type ContactService struct {
	mailer    mailer.Sender
	recipient string
	logger    logging.Logger
}

func NewContactService(sender mailer.Sender, recipient string, logger logging.Logger) *ContactService {
	return &ContactService{mailer: sender, recipient: recipient, logger: logger.With("module", "contact")}
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if s.recipient == "" {
		return fmt.Errorf("%w: contact recipient not configured", common.ErrorInternal)
	}

	req := models.ContactRequest{Email: in.Email, Name: in.Name, Phone: in.Phone, Type: in.Type}
	err := s.mailer.Send(ctx, mailer.Email{
		To:      []string{s.recipient},
		ReplyTo: req.Email,
		Subject: contactSubject(req),
		Body:    contactBody(req),
	})
	if err != nil {
		s.logger.Error(ctx, "contact mail failed", "error", err)
		return fmt.Errorf("%w: send contact mail: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "contact request forwarded", "type", req.Type)
	return nil
}

func contactSubject(r models.ContactRequest) string {
	return fmt.Sprintf("New %s Request from %s", r.Type, r.Name)
}

func contactBody(r models.ContactRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s Request\n\n", strings.ReplaceAll(r.Type, "-", " "))
	fmt.Fprintf(&b, "Full Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Email Address: %s\n", r.Email)
	fmt.Fprintf(&b, "Phone Number: %s\n", r.Phone)
	fmt.Fprintf(&b, "Request Type: %s\n", r.Type)
	b.WriteString("\nIkhlas Housing and Properties\n")
	return b.String()
}
