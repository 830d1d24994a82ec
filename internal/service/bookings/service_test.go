package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	"github.com/nguyenhau8209/PetHaven/internal/service/bookings/models"
)

// fakeBookingRepo повторяет семантику реального репозитория: UpdateStatus
// применяется только если текущий статус входит в from, иначе ErrNoTransition
type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	err      error
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	m := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.Date.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	if f.err != nil {
		return f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrNoTransition
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			if to == domain.StatusCancelled {
				now := time.Now()
				b.CancelledAt = &now
			}
			return nil
		}
	}
	return bookingRepo.ErrNoTransition
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func pendingBooking(id int64, requester string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		SlotID:      1,
		Date:        testDate,
		Status:      domain.StatusPending,
		RequesterID: requester,
	}
}

// Подтверждение

func TestConfirm_PendingBecomesConfirmed(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestConfirm_AlreadyConfirmedIsNoOp(t *testing.T) {
	b := pendingBooking(1, "user-1")
	b.Status = domain.StatusConfirmed

	svc := NewService(newFakeBookingRepo(b), nopLogger{})

	err := svc.Confirm(context.Background(), 1)
	assert.NoError(t, err)
}

func TestConfirm_CancelledIsInvalidTransition(t *testing.T) {
	b := pendingBooking(1, "user-1")
	b.Status = domain.StatusCancelled

	svc := NewService(newFakeBookingRepo(b), nopLogger{})

	err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirm_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	err := svc.Confirm(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// Отмена

func TestCancel_OwnerCancelsPending(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.NotNil(t, repo.bookings[1].CancelledAt)
}

func TestCancel_OwnerCancelsConfirmed(t *testing.T) {
	b := pendingBooking(1, "user-1")
	b.Status = domain.StatusConfirmed

	repo := newFakeBookingRepo(b)
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: "user-2"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusPending, repo.bookings[1].Status)
}

func TestCancel_StaffCancelsForeignBooking(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: "staff-1", IsStaff: true})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_AlreadyCancelledIsNoOp(t *testing.T) {
	b := pendingBooking(1, "user-1")
	b.Status = domain.StatusCancelled

	svc := NewService(newFakeBookingRepo(b), nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{RequesterID: "user-1"})
	assert.NoError(t, err)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{RequesterID: "user-1"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// Полный жизненный цикл: pending -> confirmed -> cancelled

func TestBookingLifecycle(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Confirm(ctx, 1))
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)

	require.NoError(t, svc.Cancel(ctx, 1, &models.CancelBookingRequest{RequesterID: "user-1"}))
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)

	// Отменённое бронирование терминально: подтвердить нельзя
	assert.ErrorIs(t, svc.Confirm(ctx, 1), ErrInvalidTransition)
}

// Чтение

func TestGetByID_OwnerAndStaffAccess(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, "user-1"))
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	// Владелец видит своё бронирование
	resp, err := svc.GetByID(ctx, 1, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)

	// Персонал видит любое
	_, err = svc.GetByID(ctx, 1, "staff-1", true)
	assert.NoError(t, err)

	// Чужой пользователь - нет
	_, err = svc.GetByID(ctx, 1, "user-2", false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByDate(t *testing.T) {
	other := pendingBooking(2, "user-2")
	other.Date = testDate.AddDate(0, 0, 1)

	repo := newFakeBookingRepo(pendingBooking(1, "user-1"), other)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListByDate(context.Background(), &models.GetDayBookingsRequest{Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Equal(t, testDate.Format(domain.DateFormat), resp.Date)
}

func TestListByDate_ZeroDate(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.ListByDate(context.Background(), &models.GetDayBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RepositoryErrorWrapped(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo, nopLogger{})

	err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
