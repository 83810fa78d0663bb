package services

import (
	"context"
	"encoding/json"

	"phonetech/internal/models"
	"phonetech/internal/repositories"
	"phonetech/pkg/logx"
)

// ContactService persists contact form messages and notifies downstream
// consumers (the mail sender) through the event queue.
type ContactService struct {
	repo   repositories.ContactRepository
	events EventPublisher
}

// NewContactService creates a new ContactService. events may be nil.
func NewContactService(repo repositories.ContactRepository, events EventPublisher) *ContactService {
	return &ContactService{
		repo:   repo,
		events: events,
	}
}

// Send stores the message and publishes a contact.received event. The
// message is already persisted when publication fails, so a broker outage
// is logged rather than surfaced to the visitor.
func (s *ContactService) Send(ctx context.Context, message *models.ContactMessage) error {
	if err := s.repo.Create(ctx, message); err != nil {
		return err
	}

	if s.events == nil {
		logx.Warn().Str("messageId", message.ID).Msg("no event publisher configured, contact notification dropped")
		return nil
	}
	body, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Msg("failed to marshal contact event")
		return nil
	}
	if err := s.events.Publish(EventContactReceived, body); err != nil {
		logx.Error().Err(err).Str("messageId", message.ID).Msg("failed to publish contact event")
	}
	return nil
}
