package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/123NE456/kb-booking-app/internal/domain"
	"github.com/123NE456/kb-booking-app/internal/store"
	apperrors "github.com/123NE456/kb-booking-app/pkg/errors"
)

// MockReservationStore is an in-memory ReservationStore for tests
type MockReservationStore struct {
	mu           sync.Mutex
	reservations []domain.Reservation
	nextID       uint
	insertErr    error
	existsErr    error
}

func (m *MockReservationStore) Insert(ctx context.Context, r *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, existing := range m.reservations {
		if existing.Date == r.Date && existing.Time == r.Time {
			return store.ErrDuplicateSlot
		}
	}
	m.nextID++
	r.ID = m.nextID
	m.reservations = append(m.reservations, *r)
	return nil
}

func (m *MockReservationStore) ExistsFor(ctx context.Context, date, timeOfDay string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, r := range m.reservations {
		if r.Date == date && r.Time == timeOfDay {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockReservationStore) List(ctx context.Context, offset, limit int) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Reservation, len(m.reservations))
	copy(out, m.reservations)
	return out, nil
}

func (m *MockReservationStore) count(date, timeOfDay string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.reservations {
		if r.Date == date && r.Time == timeOfDay {
			n++
		}
	}
	return n
}

// MockNotifier records notification calls for tests
type MockNotifier struct {
	mu            sync.Mutex
	adminCalls    int
	customerCalls int
	err           error
	done          chan struct{}
}

func newMockNotifier() *MockNotifier {
	return &MockNotifier{done: make(chan struct{}, 2)}
}

func (m *MockNotifier) NotifyBookingAdmin(r *domain.Reservation) error {
	m.mu.Lock()
	m.adminCalls++
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *MockNotifier) NotifyBookingCustomer(r *domain.Reservation) error {
	m.mu.Lock()
	m.customerCalls++
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *MockNotifier) waitForBoth(t *testing.T) {
	t.Helper()
	for i := 0; i < 2; i++ {
		select {
		case <-m.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for notifications")
		}
	}
}

func (m *MockNotifier) calls() (admin, customer int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adminCalls, m.customerCalls
}

// newTestBookingService pins "today" to 2024-06-15 local time
func newTestBookingService(reservations *MockReservationStore, notifier *MockNotifier) *BookingService {
	svc := NewBookingService(reservations, notifier)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 13, 30, 0, 0, time.Local)
	}
	return svc
}

func validRequest() BookingRequest {
	return BookingRequest{
		Name:      "Awa Diop",
		Phone:     "+33612345678",
		Email:     "awa@example.com",
		Hairstyle: "Box braids",
		Date:      "2024-06-20",
		Time:      "09:00",
	}
}

func TestBookingService_Book_Success(t *testing.T) {
	reservations := &MockReservationStore{}
	notifier := newMockNotifier()
	svc := newTestBookingService(reservations, notifier)

	req := validRequest()
	req.Date = "2999-01-01"

	result, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book() error = %v, want nil", err)
	}
	if !result.Confirmed {
		t.Fatalf("Book() not confirmed: reason=%s message=%q", result.Reason, result.Message)
	}
	if result.Reservation == nil || result.Reservation.ID == 0 {
		t.Fatal("Book() did not assign a reservation id")
	}
	if result.Message == "" {
		t.Error("Book() returned empty confirmation message")
	}
	if got := reservations.count("2999-01-01", "09:00"); got != 1 {
		t.Errorf("reservation count = %d, want 1", got)
	}

	notifier.waitForBoth(t)
	admin, customer := notifier.calls()
	if admin != 1 || customer != 1 {
		t.Errorf("notifications sent admin=%d customer=%d, want 1 and 1", admin, customer)
	}
}

func TestBookingService_Book_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*BookingRequest)
		wantReason apperrors.ErrorCode
	}{
		{
			name:       "unparseable date",
			mutate:     func(r *BookingRequest) { r.Date = "20/06/2024" },
			wantReason: apperrors.ErrCodeInvalidDateFormat,
		},
		{
			name:       "date in the past",
			mutate:     func(r *BookingRequest) { r.Date = "2000-01-01" },
			wantReason: apperrors.ErrCodePastDate,
		},
		{
			name:       "yesterday",
			mutate:     func(r *BookingRequest) { r.Date = "2024-06-14" },
			wantReason: apperrors.ErrCodePastDate,
		},
		{
			name:       "time outside business hours",
			mutate:     func(r *BookingRequest) { r.Time = "12:00" },
			wantReason: apperrors.ErrCodeInvalidTimeSlot,
		},
		{
			name: "past date wins over invalid time",
			mutate: func(r *BookingRequest) {
				r.Date = "2000-01-01"
				r.Time = "12:00"
			},
			wantReason: apperrors.ErrCodePastDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservations := &MockReservationStore{}
			notifier := newMockNotifier()
			svc := newTestBookingService(reservations, notifier)

			req := validRequest()
			tt.mutate(&req)

			// Rejections must be idempotent: same reason both times, zero rows.
			for i := 0; i < 2; i++ {
				result, err := svc.Book(context.Background(), req)
				if err != nil {
					t.Fatalf("Book() attempt %d error = %v, want nil", i+1, err)
				}
				if result.Confirmed {
					t.Fatalf("Book() attempt %d confirmed, want rejection", i+1)
				}
				if result.Reason != tt.wantReason {
					t.Errorf("Book() attempt %d reason = %s, want %s", i+1, result.Reason, tt.wantReason)
				}
				if result.Message == "" {
					t.Errorf("Book() attempt %d has empty display message", i+1)
				}
			}

			if len(reservations.reservations) != 0 {
				t.Errorf("rejected bookings created %d reservations, want 0", len(reservations.reservations))
			}
			admin, customer := notifier.calls()
			if admin != 0 || customer != 0 {
				t.Errorf("rejected booking sent notifications admin=%d customer=%d", admin, customer)
			}
		})
	}
}

func TestBookingService_Book_SlotAlreadyBooked(t *testing.T) {
	reservations := &MockReservationStore{}
	notifier := newMockNotifier()
	svc := newTestBookingService(reservations, notifier)

	first, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first Book() error = %v", err)
	}
	if !first.Confirmed {
		t.Fatalf("first Book() rejected: %s", first.Reason)
	}

	second, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("second Book() error = %v", err)
	}
	if second.Confirmed {
		t.Fatal("second Book() confirmed, want rejection")
	}
	if second.Reason != apperrors.ErrCodeSlotAlreadyBooked {
		t.Errorf("second Book() reason = %s, want %s", second.Reason, apperrors.ErrCodeSlotAlreadyBooked)
	}
	// The conflict message must reference the contested slot.
	for _, fragment := range []string{"2024-06-20", "09:00"} {
		if !strings.Contains(second.Message, fragment) {
			t.Errorf("conflict message %q does not mention %q", second.Message, fragment)
		}
	}
	if got := reservations.count("2024-06-20", "09:00"); got != 1 {
		t.Errorf("reservation count = %d, want exactly 1", got)
	}
}

func TestBookingService_Book_DuplicateInsertMapsToConflict(t *testing.T) {
	// Simulates the race where the availability check passes but the unique
	// index rejects the insert.
	reservations := &MockReservationStore{insertErr: store.ErrDuplicateSlot}
	notifier := newMockNotifier()
	svc := newTestBookingService(reservations, notifier)

	result, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book() error = %v, want nil", err)
	}
	if result.Confirmed {
		t.Fatal("Book() confirmed despite duplicate insert")
	}
	if result.Reason != apperrors.ErrCodeSlotAlreadyBooked {
		t.Errorf("Book() reason = %s, want %s", result.Reason, apperrors.ErrCodeSlotAlreadyBooked)
	}
}

func TestBookingService_Book_StorageUnavailable(t *testing.T) {
	storageErr := apperrors.New(apperrors.ErrCodeStorageUnavailable, "db down")
	reservations := &MockReservationStore{existsErr: storageErr}
	notifier := newMockNotifier()
	svc := newTestBookingService(reservations, notifier)

	result, err := svc.Book(context.Background(), validRequest())
	if err == nil {
		t.Fatal("Book() error = nil, want storage error")
	}
	if result != nil {
		t.Errorf("Book() result = %+v, want nil on storage fault", result)
	}
	if !apperrors.IsStorageUnavailable(err) {
		t.Errorf("Book() error code = %s, want STORAGE_UNAVAILABLE", apperrors.Code(err))
	}
}

func TestBookingService_Book_NotificationFailureDoesNotAffectResult(t *testing.T) {
	reservations := &MockReservationStore{}
	notifier := newMockNotifier()
	notifier.err = apperrors.New(apperrors.ErrCodeInternalError, "smtp unreachable")
	svc := newTestBookingService(reservations, notifier)

	result, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book() error = %v, want nil", err)
	}
	if !result.Confirmed {
		t.Fatalf("Book() rejected: %s", result.Reason)
	}
	notifier.waitForBoth(t)
	if got := reservations.count("2024-06-20", "09:00"); got != 1 {
		t.Errorf("reservation count = %d, want 1", got)
	}
}

func TestBookingService_Book_TodayIsBookable(t *testing.T) {
	reservations := &MockReservationStore{}
	notifier := newMockNotifier()
	svc := newTestBookingService(reservations, notifier)

	req := validRequest()
	req.Date = "2024-06-15" // the pinned "today"

	result, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if !result.Confirmed {
		t.Errorf("Book() for today rejected with %s, want confirmation", result.Reason)
	}
}

func TestBookingService_Book_TodayIsBookableAcrossZones(t *testing.T) {
	// The request date and the clock must share a calendar. With the date
	// parsed in UTC, local midnight in any zone west of UTC falls after the
	// parsed instant and "today" gets rejected as past.
	zones := []struct {
		name string
		loc  *time.Location
	}{
		{name: "west of UTC", loc: time.FixedZone("UTC-5", -5*3600)},
		{name: "east of UTC", loc: time.FixedZone("UTC+9", 9*3600)},
	}

	for _, zone := range zones {
		t.Run(zone.name, func(t *testing.T) {
			reservations := &MockReservationStore{}
			notifier := newMockNotifier()
			svc := NewBookingService(reservations, notifier)
			svc.now = func() time.Time {
				return time.Date(2024, 6, 15, 13, 30, 0, 0, zone.loc)
			}

			req := validRequest()
			req.Date = "2024-06-15"
			result, err := svc.Book(context.Background(), req)
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}
			if !result.Confirmed {
				t.Errorf("Book() for today rejected with %s, want confirmation", result.Reason)
			}

			// Yesterday stays rejected in the same zone.
			req = validRequest()
			req.Date = "2024-06-14"
			req.Time = "10:00"
			result, err = svc.Book(context.Background(), req)
			if err != nil {
				t.Fatalf("Book() error = %v", err)
			}
			if result.Confirmed || result.Reason != apperrors.ErrCodePastDate {
				t.Errorf("Book() for yesterday: confirmed=%v reason=%s, want PAST_DATE rejection", result.Confirmed, result.Reason)
			}
		})
	}
}
