package reserve_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
	bookingsService "github.com/nguyenhau8209/PetHaven/internal/service/bookings"
	"github.com/nguyenhau8209/PetHaven/internal/service/bookings/models"
	getAvailability "github.com/nguyenhau8209/PetHaven/internal/usecase/get_availability"
)

// sharedLedger общий журнал бронирований для сквозного сценария: хранит
// записи и воспроизводит семантику частичного уникального индекса
// и условного UPDATE статуса
type sharedLedger struct {
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newSharedLedger() *sharedLedger {
	return &sharedLedger{bookings: map[int64]*domain.Booking{}}
}

func (l *sharedLedger) findActive(slotID int64, date time.Time) *domain.Booking {
	for _, b := range l.bookings {
		if b.SlotID == slotID && b.Date.Equal(date) && b.IsActive() {
			return b
		}
	}
	return nil
}

func (l *sharedLedger) InsertPending(_ context.Context, slotID int64, date time.Time, requesterID string) (*domain.Booking, error) {
	if l.findActive(slotID, date) != nil {
		return nil, bookingRepo.ErrSlotTaken
	}

	l.nextID++
	b := &domain.Booking{
		ID:          l.nextID,
		SlotID:      slotID,
		Date:        date,
		Status:      domain.StatusPending,
		RequesterID: requesterID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	l.bookings[b.ID] = b

	copied := *b
	return &copied, nil
}

func (l *sharedLedger) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := l.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (l *sharedLedger) ListByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range l.bookings {
		if b.Date.Equal(date) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (l *sharedLedger) ListActiveByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range l.bookings {
		if b.Date.Equal(date) && b.IsActive() {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (l *sharedLedger) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	b, ok := l.bookings[id]
	if !ok {
		return bookingRepo.ErrNoTransition
	}

	matched := false
	for _, s := range from {
		if b.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return bookingRepo.ErrNoTransition
	}

	b.Status = to
	if to == domain.StatusCancelled {
		now := time.Now()
		b.CancelledAt = &now
	}
	b.UpdatedAt = time.Now()
	return nil
}

// sharedCatalog каталог слотов, отсортированный по времени суток
type sharedCatalog struct {
	slots []*domain.Slot
}

func (c *sharedCatalog) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	for _, s := range c.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (c *sharedCatalog) List(_ context.Context) ([]*domain.Slot, error) {
	return c.slots, nil
}

// Сквозной сценарий жизненного цикла пары (слот, дата): резерв, конфликт
// конкурента, подтверждение, отмена и повторное открытие слота - все
// компоненты работают над одним журналом.
func TestLifecycle_ReserveConfirmCancelReopens(t *testing.T) {
	ctx := context.Background()

	ledger := newSharedLedger()
	catalog := &sharedCatalog{slots: []*domain.Slot{
		{ID: 1, TimeOfDay: "09:00", Enabled: true},
		{ID: 2, TimeOfDay: "14:00", Enabled: true},
	}}
	overrides := &fakeOverrideRepo{}

	reserve := NewUseCase(catalog, ledger, overrides, fakeTxManager{}, nopLogger{})
	reserve.timeProvider = &fakeTimeProvider{now: testNow}
	availability := getAvailability.NewUseCase(catalog, ledger, overrides, nopLogger{})
	bookingSvc := bookingsService.NewService(ledger, nopLogger{})

	availableSlots := func() []int64 {
		resp, err := availability.Execute(ctx, &getAvailability.Request{Date: testDate})
		require.NoError(t, err)
		ids := make([]int64, 0, len(resp.Slots))
		for _, s := range resp.Slots {
			ids = append(ids, s.ID)
		}
		return ids
	}

	// Изначально свободны оба слота
	assert.Equal(t, []int64{1, 2}, availableSlots())

	// Клиент резервирует слот 1
	created, err := reserve.Execute(ctx, &Request{SlotID: 1, Date: testDate, RequesterID: "client-a"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), created.Status)

	// Конкурент на ту же пару получает конфликт
	_, err = reserve.Execute(ctx, &Request{SlotID: 1, Date: testDate, RequesterID: "client-b"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Слот пропал из доступности
	assert.Equal(t, []int64{2}, availableSlots())

	// Подтверждение не возвращает слот в доступность
	require.NoError(t, bookingSvc.Confirm(ctx, created.BookingID))
	assert.Equal(t, []int64{2}, availableSlots())

	// Отмена владельцем снова открывает пару
	cancelReq := &models.CancelBookingRequest{RequesterID: "client-a"}
	require.NoError(t, bookingSvc.Cancel(ctx, created.BookingID, cancelReq))
	assert.Equal(t, []int64{1, 2}, availableSlots())

	// Пара свободна для нового резерва, прежняя запись остаётся отменённой
	again, err := reserve.Execute(ctx, &Request{SlotID: 1, Date: testDate, RequesterID: "client-b"})
	require.NoError(t, err)
	assert.NotEqual(t, created.BookingID, again.BookingID)

	err = bookingSvc.Confirm(ctx, created.BookingID)
	assert.ErrorIs(t, err, bookingsService.ErrInvalidTransition)
}
