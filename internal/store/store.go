// Package store provides durable persistence for reservations and contact
// messages. Services depend on the interfaces so tests can substitute
// in-memory implementations.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/123NE456/kb-booking-app/internal/domain"
	apperrors "github.com/123NE456/kb-booking-app/pkg/errors"
)

// ErrDuplicateSlot is returned by Insert when another reservation already
// holds the same (date, time) pair. The unique index makes this the final
// word even when two requests pass the availability check concurrently.
var ErrDuplicateSlot = errors.New("reservation slot already taken")

// ReservationStore is the source of truth for confirmed bookings
type ReservationStore interface {
	Insert(ctx context.Context, r *domain.Reservation) error
	ExistsFor(ctx context.Context, date, timeOfDay string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]domain.Reservation, error)
}

// MessageStore persists contact form submissions
type MessageStore interface {
	Insert(ctx context.Context, m *domain.ContactMessage) error
	List(ctx context.Context, offset, limit int) ([]domain.ContactMessage, error)
}

// GormReservationStore implements ReservationStore on GORM
type GormReservationStore struct {
	db *gorm.DB
}

// NewReservationStore creates a GORM-backed reservation store
func NewReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{db: db}
}

// Insert persists a reservation and assigns its id
func (s *GormReservationStore) Insert(ctx context.Context, r *domain.Reservation) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSlot
		}
		return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to insert reservation", err)
	}
	return nil
}

// isDuplicateKey detects a unique-constraint violation. GORM translates the
// error for the Postgres and mattn sqlite drivers; the pure Go sqlite driver
// only reports it in the error text.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ExistsFor reports whether any reservation holds the given slot
func (s *GormReservationStore) ExistsFor(ctx context.Context, date, timeOfDay string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("date = ? AND time = ?", date, timeOfDay).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to check slot", err)
	}
	return count > 0, nil
}

// List returns reservations ordered by creation time, newest first
func (s *GormReservationStore) List(ctx context.Context, offset, limit int) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if err := query.Limit(limit).Find(&reservations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to list reservations", err)
	}
	return reservations, nil
}

// GormMessageStore implements MessageStore on GORM
type GormMessageStore struct {
	db *gorm.DB
}

// NewMessageStore creates a GORM-backed message store
func NewMessageStore(db *gorm.DB) *GormMessageStore {
	return &GormMessageStore{db: db}
}

// Insert persists a contact message and assigns its id
func (s *GormMessageStore) Insert(ctx context.Context, m *domain.ContactMessage) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to insert message", err)
	}
	return nil
}

// List returns contact messages ordered by creation time, newest first
func (s *GormMessageStore) List(ctx context.Context, offset, limit int) ([]domain.ContactMessage, error) {
	var messages []domain.ContactMessage
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if err := query.Limit(limit).Find(&messages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to list messages", err)
	}
	return messages, nil
}

var _ ReservationStore = (*GormReservationStore)(nil)
var _ MessageStore = (*GormMessageStore)(nil)
