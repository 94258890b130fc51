package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/123NE456/kb-booking-app/internal/domain"
	"github.com/123NE456/kb-booking-app/internal/metrics"
	"github.com/123NE456/kb-booking-app/internal/schedule"
	"github.com/123NE456/kb-booking-app/internal/store"
	apperrors "github.com/123NE456/kb-booking-app/pkg/errors"
)

const dateLayout = "2006-01-02"

// BookingNotifier dispatches best-effort booking notifications. Failures are
// logged and swallowed; the booking result never depends on them.
type BookingNotifier interface {
	NotifyBookingAdmin(r *domain.Reservation) error
	NotifyBookingCustomer(r *domain.Reservation) error
}

// BookingRequest carries the booking form fields
type BookingRequest struct {
	Name      string
	Phone     string
	Email     string
	Hairstyle string
	Date      string
	Time      string
}

// BookingResult is the discriminated outcome of a booking attempt. Either
// Confirmed is true and Reservation is set, or Reason carries the typed
// rejection and Message a display-ready explanation.
type BookingResult struct {
	Confirmed   bool
	Message     string
	Reason      apperrors.ErrorCode
	Reservation *domain.Reservation
}

// BookingService validates booking requests end-to-end: date format, past
// date, business hours, slot availability, then persistence and
// notification.
type BookingService struct {
	reservations store.ReservationStore
	notifier     BookingNotifier
	now          func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(reservations store.ReservationStore, notifier BookingNotifier) *BookingService {
	return &BookingService{
		reservations: reservations,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Book runs the booking workflow. Rejections caused by client input come
// back as a non-confirmed result with a nil error; only infrastructure
// faults (storage unreachable) are returned as errors.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	req = trimBookingRequest(req)
	log.Printf("[BOOKING] Book request: name=%s, date=%s, time=%s, hairstyle=%s", req.Name, req.Date, req.Time, req.Hairstyle)

	// 1. Parse the date in the local zone. Parsing in UTC would put the
	// request date behind local midnight anywhere west of UTC and reject
	// bookings for the current day.
	now := s.now()
	day, err := time.ParseInLocation(dateLayout, req.Date, now.Location())
	if err != nil {
		return s.reject(apperrors.ErrCodeInvalidDateFormat,
			fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", req.Date)), nil
	}

	// 2. Reject dates strictly before today (local date granularity).
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return s.reject(apperrors.ErrCodePastDate,
			fmt.Sprintf("Date %s is in the past, please pick an upcoming day", req.Date)), nil
	}

	// 3. The time must be one of the salon's business hours.
	if !schedule.IsBusinessHour(req.Time) {
		return s.reject(apperrors.ErrCodeInvalidTimeSlot,
			fmt.Sprintf("Time %s is outside business hours, available slots are %s", req.Time, strings.Join(schedule.Slots(), ", "))), nil
	}

	// 4. The slot must be free.
	taken, err := s.reservations.ExistsFor(ctx, req.Date, req.Time)
	if err != nil {
		log.Printf("[BOOKING] Book failed: storage error on slot check: %v", err)
		return nil, err
	}
	if taken {
		return s.reject(apperrors.ErrCodeSlotAlreadyBooked, slotTakenMessage(req.Date, req.Time)), nil
	}

	// 5. Persist, then notify. The unique index on (date, time) is the
	// final arbiter: a concurrent insert of the same slot surfaces here as
	// a duplicate and is reported as a conflict, not a fault.
	reservation := &domain.Reservation{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Hairstyle: req.Hairstyle,
		Date:      req.Date,
		Time:      req.Time,
	}
	if err := s.reservations.Insert(ctx, reservation); err != nil {
		if errors.Is(err, store.ErrDuplicateSlot) {
			return s.reject(apperrors.ErrCodeSlotAlreadyBooked, slotTakenMessage(req.Date, req.Time)), nil
		}
		log.Printf("[BOOKING] Book failed: storage error on insert: %v", err)
		return nil, err
	}

	log.Printf("[BOOKING] Book successful: id=%d, date=%s, time=%s", reservation.ID, reservation.Date, reservation.Time)
	metrics.RecordBooking("confirmed")

	// Fire-and-forget notifications. The reservation is already committed,
	// so notification failure must never roll back or fail the booking.
	go s.notify(reservation)

	return &BookingResult{
		Confirmed:   true,
		Message:     fmt.Sprintf("Reservation for %s confirmed on %s at %s", reservation.Hairstyle, reservation.Date, reservation.Time),
		Reservation: reservation,
	}, nil
}

// List returns persisted reservations for the admin surface
func (s *BookingService) List(ctx context.Context, offset, limit int) ([]domain.Reservation, error) {
	reservations, err := s.reservations.List(ctx, offset, limit)
	if err != nil {
		log.Printf("[BOOKING] List failed: storage error: %v", err)
		return nil, err
	}
	log.Printf("[BOOKING] List successful: returned %d reservations", len(reservations))
	return reservations, nil
}

func (s *BookingService) reject(reason apperrors.ErrorCode, message string) *BookingResult {
	log.Printf("[BOOKING] Book rejected: reason=%s", reason)
	metrics.RecordBooking("rejected")
	return &BookingResult{
		Confirmed: false,
		Reason:    reason,
		Message:   message,
	}
}

func (s *BookingService) notify(r *domain.Reservation) {
	if err := s.notifier.NotifyBookingAdmin(r); err != nil {
		log.Printf("[BOOKING] Warning: failed to send admin notification for reservation id=%d: %v", r.ID, err)
	}
	if err := s.notifier.NotifyBookingCustomer(r); err != nil {
		log.Printf("[BOOKING] Warning: failed to send customer confirmation for reservation id=%d: %v", r.ID, err)
	}
}

func slotTakenMessage(date, timeOfDay string) string {
	return fmt.Sprintf("The slot on %s at %s is already booked, please choose another time", date, timeOfDay)
}

func trimBookingRequest(req BookingRequest) BookingRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Hairstyle = strings.TrimSpace(req.Hairstyle)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	return req
}
