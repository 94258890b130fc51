package services

import (
	"context"
	"log"
	"strings"

	"github.com/123NE456/kb-booking-app/internal/domain"
	"github.com/123NE456/kb-booking-app/internal/metrics"
	"github.com/123NE456/kb-booking-app/internal/store"
	apperrors "github.com/123NE456/kb-booking-app/pkg/errors"
)

// ContactNotifier dispatches best-effort contact notifications
type ContactNotifier interface {
	NotifyContactAdmin(m *domain.ContactMessage) error
}

// ContactRequest carries the contact form fields
type ContactRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService persists contact form submissions
type ContactService struct {
	messages store.MessageStore
	notifier ContactNotifier
}

// NewContactService creates a new contact service
func NewContactService(messages store.MessageStore, notifier ContactNotifier) *ContactService {
	return &ContactService{
		messages: messages,
		notifier: notifier,
	}
}

// Submit stores a contact message. Validation is presence-only; beyond that
// the fields are free text.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*domain.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Message)

	log.Printf("[CONTACT] Submit request: name=%s, email=%s", name, email)

	if name == "" || email == "" || subject == "" || body == "" {
		log.Printf("[CONTACT] Submit rejected: missing required field")
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "name, email, subject and message are required")
	}

	message := &domain.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: body,
	}

	if err := s.messages.Insert(ctx, message); err != nil {
		log.Printf("[CONTACT] Submit failed: storage error: %v", err)
		return nil, err
	}

	log.Printf("[CONTACT] Submit successful: id=%d, name=%s, email=%s", message.ID, message.Name, message.Email)
	metrics.RecordContactSubmission()

	// Send email notification to admin (async, don't fail if email fails)
	go func() {
		if err := s.notifier.NotifyContactAdmin(message); err != nil {
			log.Printf("[CONTACT] Warning: failed to send notification email: %v", err)
		} else {
			log.Printf("[CONTACT] Notification email sent for message id=%d", message.ID)
		}
	}()

	return message, nil
}

// List returns stored contact messages for the admin surface
func (s *ContactService) List(ctx context.Context, offset, limit int) ([]domain.ContactMessage, error) {
	messages, err := s.messages.List(ctx, offset, limit)
	if err != nil {
		log.Printf("[CONTACT] List failed: storage error: %v", err)
		return nil, err
	}
	log.Printf("[CONTACT] List successful: returned %d messages", len(messages))
	return messages, nil
}
