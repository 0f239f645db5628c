package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gbur-rwanda/gbur-backend/database"
	"github.com/gbur-rwanda/gbur-backend/errs"
	"github.com/gbur-rwanda/gbur-backend/models"
	"github.com/gbur-rwanda/gbur-backend/validation"
)

type ContactService struct {
	messages *database.ContactMessageRepo
	notifier Notifier
	logger   zerolog.Logger
}

// NewContactService builds the service. A nil notifier disables e-mail.
func NewContactService(db database.Database, notifier Notifier) *ContactService {
	return &ContactService{
		messages: db.ContactMessageRepo(),
		notifier: notifier,
		logger:   serviceLogger("contact"),
	}
}

// Submit stores an unread message and then notifies the team. A failed
// notification is logged and does not fail the submission.
func (s *ContactService) Submit(ctx context.Context, in validation.ContactInput) (models.ContactMessage, error) {
	if err := in.ValidateCreate(); err != nil {
		return models.ContactMessage{}, err
	}

	msg := models.ContactMessage{
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber.Ptr(),
		Subject:     in.Subject,
		Message:     in.Message,
		Status:      models.ContactStatusUnread,
	}
	if err := s.messages.Add(ctx, &msg); err != nil {
		return models.ContactMessage{}, errs.NewDatabaseError("create", "contact message", err)
	}
	s.logger.Info().Uint("messageId", msg.ID).Str("subject", msg.Subject).Msg("contact message stored")

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, msg); err != nil {
			s.logger.Error().Err(err).Uint("messageId", msg.ID).Msg("contact notification failed")
		}
	}
	return msg, nil
}

// Messages lists stored messages newest first. An unknown status lists all.
func (s *ContactService) Messages(ctx context.Context, status string) ([]models.ContactMessage, error) {
	messages, err := s.messages.FindAll(ctx, status)
	return listResult(s.logger, "contact messages", messages, err)
}
