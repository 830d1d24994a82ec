package confirm_day

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	listErr  error

	// updateErrs ошибка UpdateStatus для конкретного ID
	updateErrs map[int64]error
	updated    []int64
}

func (f *fakeBookingRepo) ListByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.listErr
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	if err, ok := f.updateErrs[id]; ok {
		return err
	}
	f.updated = append(f.updated, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func TestExecute_ConfirmsAllPending(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusPending},
			{ID: 2, Status: domain.StatusConfirmed},
			{ID: 3, Status: domain.StatusPending},
			{ID: 4, Status: domain.StatusCancelled},
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	// Переводятся только pending; confirmed и cancelled не трогаются
	assert.Equal(t, 2, resp.Confirmed)
	assert.Equal(t, 0, resp.Failed)
	assert.Equal(t, []int64{1, 3}, repo.updated)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Confirmed)
	assert.True(t, resp.Results[1].Confirmed)
}

func TestExecute_IsIdempotent(t *testing.T) {
	// Повторный запуск: pending не осталось, подтверждать нечего
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusConfirmed},
			{ID: 2, Status: domain.StatusConfirmed},
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Confirmed)
	assert.Equal(t, 0, resp.Failed)
	assert.Empty(t, resp.Results)
	assert.Empty(t, repo.updated)
}

func TestExecute_PartialFailureDoesNotAbortBatch(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusPending},
			{ID: 2, Status: domain.StatusPending},
			{ID: 3, Status: domain.StatusPending},
		},
		updateErrs: map[int64]error{
			2: bookingRepo.ErrNoTransition,
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	// Сбой одного элемента не откатывает остальные
	assert.Equal(t, 2, resp.Confirmed)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, []int64{1, 3}, repo.updated)

	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Confirmed)
	assert.False(t, resp.Results[1].Confirmed)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.True(t, resp.Results[2].Confirmed)
}

func TestExecute_StorageErrorRecordedPerItem(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, Status: domain.StatusPending},
			{ID: 2, Status: domain.StatusPending},
		},
		updateErrs: map[int64]error{
			1: errors.New("connection reset"),
		},
	}

	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Confirmed)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, "storage error", resp.Results[0].Error)
}

func TestExecute_ListError(t *testing.T) {
	repo := &fakeBookingRepo{listErr: errors.New("connection refused")}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ZeroDateRejected(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
