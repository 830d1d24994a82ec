package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

type fakeSlotRepo struct {
	slots      []*domain.Slot
	nextID     int64
	enabledAll bool
	err        error
}

func (f *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.slots {
		if existing.TimeOfDay == s.TimeOfDay {
			return nil, slotRepo.ErrSlotExists
		}
	}
	f.nextID++
	s.ID = f.nextID
	f.slots = append(f.slots, s)
	return s, nil
}

func (f *fakeSlotRepo) List(_ context.Context) ([]*domain.Slot, error) {
	return f.slots, f.err
}

func (f *fakeSlotRepo) SetEnabled(_ context.Context, id int64, enabled bool) error {
	if f.err != nil {
		return f.err
	}
	for _, s := range f.slots {
		if s.ID == id {
			s.Enabled = enabled
			return nil
		}
	}
	return slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) EnableAll(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.enabledAll = true
	for _, s := range f.slots {
		s.Enabled = true
	}
	return nil
}

type fakeOverrideRepo struct {
	closed map[string]bool
	err    error
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{closed: map[string]bool{}}
}

func (f *fakeOverrideRepo) CloseDay(_ context.Context, date time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.closed[date.Format(domain.DateFormat)] = true
	return nil
}

func (f *fakeOverrideRepo) ReopenDay(_ context.Context, date time.Time) error {
	if f.err != nil {
		return f.err
	}
	delete(f.closed, date.Format(domain.DateFormat))
	return nil
}

func (f *fakeOverrideRepo) ReopenAll(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.closed = map[string]bool{}
	return nil
}

func (f *fakeOverrideRepo) ListClosed(_ context.Context, _ time.Time) ([]*domain.DayOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.DayOverride, 0, len(f.closed))
	for day := range f.closed {
		date, _ := time.Parse(domain.DateFormat, day)
		result = append(result, &domain.DayOverride{Date: date, Closed: true})
	}
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func newTestService(slots *fakeSlotRepo, overrides *fakeOverrideRepo) *Service {
	return NewService(slots, overrides, fakeTxManager{}, &fakeTimeProvider{now: testDate}, nopLogger{})
}

func TestCreateSlot(t *testing.T) {
	slots := &fakeSlotRepo{}
	svc := newTestService(slots, newFakeOverrideRepo())
	ctx := context.Background()

	resp, err := svc.CreateSlot(ctx, &models.CreateSlotRequest{TimeOfDay: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.TimeOfDay)
	assert.True(t, resp.Enabled)

	// Дубль по времени отклоняется
	_, err = svc.CreateSlot(ctx, &models.CreateSlotRequest{TimeOfDay: "09:00"})
	assert.ErrorIs(t, err, ErrSlotExists)

	// Некорректный формат времени
	_, err = svc.CreateSlot(ctx, &models.CreateSlotRequest{TimeOfDay: "9am"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetSlotEnabled(t *testing.T) {
	slots := &fakeSlotRepo{slots: []*domain.Slot{{ID: 1, TimeOfDay: "09:00", Enabled: true}}}
	svc := newTestService(slots, newFakeOverrideRepo())
	ctx := context.Background()

	require.NoError(t, svc.SetSlotEnabled(ctx, 1, &models.SetSlotEnabledRequest{Enabled: false}))
	assert.False(t, slots.slots[0].Enabled)

	require.NoError(t, svc.SetSlotEnabled(ctx, 1, &models.SetSlotEnabledRequest{Enabled: true}))
	assert.True(t, slots.slots[0].Enabled)

	err := svc.SetSlotEnabled(ctx, 99, &models.SetSlotEnabledRequest{Enabled: false})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCloseAndReopenDay(t *testing.T) {
	overrides := newFakeOverrideRepo()
	svc := newTestService(&fakeSlotRepo{}, overrides)
	ctx := context.Background()

	require.NoError(t, svc.CloseDay(ctx, &models.DayRequest{Date: testDate}))
	assert.True(t, overrides.closed[testDate.Format(domain.DateFormat)])

	// Повторное закрытие идемпотентно
	require.NoError(t, svc.CloseDay(ctx, &models.DayRequest{Date: testDate}))

	require.NoError(t, svc.ReopenDay(ctx, &models.DayRequest{Date: testDate}))
	assert.Empty(t, overrides.closed)

	// Повторное открытие тоже идемпотентно
	require.NoError(t, svc.ReopenDay(ctx, &models.DayRequest{Date: testDate}))
}

func TestCloseDay_ZeroDate(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, newFakeOverrideRepo())

	err := svc.CloseDay(context.Background(), &models.DayRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResetSchedule(t *testing.T) {
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		{ID: 1, TimeOfDay: "09:00", Enabled: false},
		{ID: 2, TimeOfDay: "11:00", Enabled: true},
	}}
	overrides := newFakeOverrideRepo()
	overrides.closed[testDate.Format(domain.DateFormat)] = true

	svc := newTestService(slots, overrides)

	require.NoError(t, svc.ResetSchedule(context.Background()))

	// Все слоты включены, все закрытия сняты
	assert.True(t, slots.slots[0].Enabled)
	assert.True(t, slots.slots[1].Enabled)
	assert.Empty(t, overrides.closed)
}

func TestResetSchedule_ErrorRollsUp(t *testing.T) {
	slots := &fakeSlotRepo{err: errors.New("connection refused")}
	svc := newTestService(slots, newFakeOverrideRepo())

	err := svc.ResetSchedule(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListClosedDays(t *testing.T) {
	overrides := newFakeOverrideRepo()
	overrides.closed["2025-10-20"] = true

	svc := newTestService(&fakeSlotRepo{}, overrides)

	resp, err := svc.ListClosedDays(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2025-10-20", resp.Days[0])
}

func TestListSlots(t *testing.T) {
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		{ID: 1, TimeOfDay: "09:00", Enabled: true},
		{ID: 2, TimeOfDay: "11:00", Enabled: false},
	}}
	svc := newTestService(slots, newFakeOverrideRepo())

	resp, err := svc.ListSlots(context.Background())
	require.NoError(t, err)

	// Каталог включает и отключённые слоты
	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.Slots[1].Enabled)
}
