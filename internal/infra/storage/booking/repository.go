package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/pkg/dbmetrics"
	"github.com/nguyenhau8209/PetHaven/pkg/psqlbuilder"
	"github.com/nguyenhau8209/PetHaven/pkg/types"
)

// Колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"slot_id",
	"booking_date",
	"status",
	"consumed",
	"requester_id",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий журнала бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertPending создает бронирование в статусе pending.
// Проверка занятости и вставка - одна неделимая операция: единственный INSERT,
// защищённый частичным уникальным индексом на (slot_id, booking_date) для
// активных статусов. Конкурирующая вставка на ту же пару получает ErrSlotTaken.
func (r *Repository) InsertPending(ctx context.Context, slotID int64, date time.Time, requesterID string) (*domain.Booking, error) {
	return r.insertActive(ctx, slotID, date, domain.StatusPending, requesterID)
}

// InsertBlocked создает синтетическое подтверждённое бронирование,
// которым персонал вручную закрывает один слот на один день.
// Для движка оно неотличимо от обычного занятого слота.
func (r *Repository) InsertBlocked(ctx context.Context, slotID int64, date time.Time, requesterID string) (*domain.Booking, error) {
	return r.insertActive(ctx, slotID, date, domain.StatusConfirmed, requesterID)
}

func (r *Repository) insertActive(ctx context.Context, slotID int64, date time.Time, status domain.BookingStatus, requesterID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	b := &domain.Booking{
		SlotID:      slotID,
		Date:        date,
		Status:      status,
		RequesterID: requesterID,
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"slot_id",
			"booking_date",
			"status",
			"consumed",
			"requester_id",
		).
		Values(
			b.SlotID,
			b.Date,
			b.Status,
			false,
			b.RequesterID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: insertActive - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: insertActive - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// FindActive получает активное (pending или confirmed) бронирование пары
// (слот, дата). Частичный уникальный индекс гарантирует, что такое
// бронирование не больше одного.
func (r *Repository) FindActive(ctx context.Context, slotID int64, date time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"slot_id":      slotID,
			"booking_date": date,
			"status":       domain.ActiveStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByDate получает все бронирования на дату независимо от статуса,
// отсортированные по времени слота
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return r.listByDate(ctx, date, false)
}

// ListActiveByDate получает активные бронирования на дату.
// Используется резолвером доступности для вычитания занятых слотов.
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return r.listByDate(ctx, date, true)
}

func (r *Repository) listByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, len(bookingColumns))
	for i, c := range bookingColumns {
		columns[i] = "b." + c
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.booking_date": date}).
		OrderBy("s.time_of_day ASC", "b.id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.ActiveStatusStrings()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование в статус to при условии, что текущий
// статус входит в from. Условие в WHERE делает переход атомарным: проигравший
// гонку UPDATE не изменит ни одной строки и получит ErrNoTransition.
// Вызывающий различает "не найдено" и "недопустимый переход" повторным GetByID.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": fromStrings})

	if to == domain.StatusCancelled {
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNoTransition
	}

	return nil
}

// MarkConsumed помечает подтверждённое бронирование состоявшимся.
// Идемпотентно: повторный вызов и вызов для неподтверждённого бронирования
// ничего не меняют и не считаются ошибкой.
func (r *Repository) MarkConsumed(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("consumed", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":       id,
			"status":   domain.StatusConfirmed,
			"consumed": false,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkConsumed - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// MarkConsumedBefore помечает состоявшимися все подтверждённые бронирования,
// дата и время слота которых прошли относительно now. Возвращает количество
// обновлённых строк. Используется периодической зачисткой.
func (r *Repository) MarkConsumedBefore(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nowTime := types.NewTimeString(now)

	query, args, err := psqlbuilder.Update("bookings").
		Set("consumed", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"status":   domain.StatusConfirmed,
			"consumed": false,
		}).
		Where(squirrel.Expr(
			"id IN (SELECT b.id FROM bookings b JOIN slots s ON s.id = b.slot_id "+
				"WHERE b.booking_date < ? OR (b.booking_date = ? AND s.time_of_day <= ?))",
			today, today, nowTime,
		)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkConsumedBefore - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkConsumedBefore - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkConsumedBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBookingRow сканирует одну строку в бронирование
func scanBookingRow(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.SlotID,
		&b.Date,
		&b.Status,
		&b.Consumed,
		&b.RequesterID,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
