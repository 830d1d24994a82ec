package toggle_slot_day

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
)

// Фейки репозиториев

type fakeSlotRepo struct {
	slot *domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	if f.slot == nil || f.slot.ID != id {
		return nil, slotRepo.ErrSlotNotFound
	}
	return f.slot, nil
}

// fakeBookingRepo хранит бронирования в памяти и повторяет семантику
// реального репозитория: один активный резерв на пару, ErrSlotTaken при
// повторной вставке, ErrNoTransition при UPDATE без подходящей строки
type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
}

func (f *fakeBookingRepo) key(slotID int64, date time.Time) string {
	return fmt.Sprintf("%d#%s", slotID, date.Format(domain.DateFormat))
}

func (f *fakeBookingRepo) FindActive(_ context.Context, slotID int64, date time.Time) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.SlotID == slotID && b.Date.Equal(date) && b.IsActive() {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) InsertBlocked(ctx context.Context, slotID int64, date time.Time, requesterID string) (*domain.Booking, error) {
	if existing, err := f.FindActive(ctx, slotID, date); err == nil && existing != nil {
		return nil, bookingRepo.ErrSlotTaken
	}

	f.nextID++
	b := &domain.Booking{
		ID:          f.nextID,
		SlotID:      slotID,
		Date:        date,
		Status:      domain.StatusConfirmed,
		RequesterID: requesterID,
	}
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrNoTransition
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			return nil
		}
	}
	return bookingRepo.ErrNoTransition
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo) *UseCase {
	slots := &fakeSlotRepo{slot: &domain.Slot{ID: 1, TimeOfDay: "09:00", Enabled: true}}
	return NewUseCase(slots, bookings, fakeTxManager{}, nopLogger{})
}

func TestExecute_BlockFreeRoundTrip(t *testing.T) {
	bookings := newFakeBookingRepo()
	uc := newTestUseCase(bookings)
	ctx := context.Background()

	// Закрываем слот на день
	resp, err := uc.Execute(ctx, &Request{SlotID: 1, Date: testDate, MakeAvailable: false, StaffID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, ActionBlocked, resp.Action)
	require.NotZero(t, resp.BookingID)

	blocked := bookings.bookings[resp.BookingID]
	require.NotNil(t, blocked)
	assert.Equal(t, domain.StatusConfirmed, blocked.Status)
	assert.Equal(t, "staff-1", blocked.RequesterID)

	// Открываем обратно: блокирующее бронирование отменяется
	resp, err = uc.Execute(ctx, &Request{SlotID: 1, Date: testDate, MakeAvailable: true, StaffID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, ActionFreed, resp.Action)
	assert.Equal(t, blocked.ID, resp.BookingID)
	assert.Equal(t, domain.StatusCancelled, blocked.Status)

	// Пара снова свободна
	_, err = bookings.FindActive(ctx, 1, testDate)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestExecute_BlockIsIdempotent(t *testing.T) {
	bookings := newFakeBookingRepo()
	uc := newTestUseCase(bookings)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{SlotID: 1, Date: testDate, MakeAvailable: false, StaffID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, ActionBlocked, resp.Action)

	// Повтор в ту же сторону ничего не меняет
	resp, err = uc.Execute(ctx, &Request{SlotID: 1, Date: testDate, MakeAvailable: false, StaffID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, resp.Action)
	assert.Zero(t, resp.BookingID)
	assert.Len(t, bookings.bookings, 1)
}

func TestExecute_FreeIsIdempotent(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo())

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 1, Date: testDate, MakeAvailable: true, StaffID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, resp.Action)
}

func TestExecute_FreeCancelsClientBooking(t *testing.T) {
	// Открытие пары отменяет любое активное бронирование, включая клиентское
	bookings := newFakeBookingRepo()
	bookings.nextID = 10
	bookings.bookings[10] = &domain.Booking{
		ID: 10, SlotID: 1, Date: testDate,
		Status: domain.StatusPending, RequesterID: "user-7",
	}

	uc := newTestUseCase(bookings)

	resp, err := uc.Execute(context.Background(), &Request{SlotID: 1, Date: testDate, MakeAvailable: true, StaffID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, ActionFreed, resp.Action)
	assert.Equal(t, int64(10), resp.BookingID)
	assert.Equal(t, domain.StatusCancelled, bookings.bookings[10].Status)
}

func TestExecute_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo())

	_, err := uc.Execute(context.Background(), &Request{SlotID: 99, Date: testDate, MakeAvailable: false, StaffID: "staff-1"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeBookingRepo())

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero slot id", req: &Request{Date: testDate, StaffID: "staff-1"}},
		{name: "zero date", req: &Request{SlotID: 1, StaffID: "staff-1"}},
		{name: "empty staff id", req: &Request{SlotID: 1, Date: testDate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
