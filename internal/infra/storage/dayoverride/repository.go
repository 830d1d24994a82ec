package dayoverride

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/pkg/dbmetrics"
	"github.com/nguyenhau8209/PetHaven/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий переопределений статуса дат.
// Хранение разреженное: запись существует только для закрытых дат,
// отсутствие записи означает "дата открыта".
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория переопределений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsClosed проверяет, закрыта ли дата целиком
func (r *Repository) IsClosed(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("closed").
		From("day_overrides").
		Where(squirrel.Eq{"day": date}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsClosed - build select query: %v", ErrBuildQuery, err)
	}

	var closed bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&closed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsClosed - scan row: %v", ErrScanRow, err)
	}

	return closed, nil
}

// CloseDay закрывает дату целиком (upsert).
// Существующие бронирования на дату не затрагиваются: закрытие блокирует
// новые резервы, а не отзывает уже сделанные.
func (r *Repository) CloseDay(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_overrides").
		Columns("day", "closed").
		Values(date, true).
		Suffix("ON CONFLICT (day) DO UPDATE SET closed = TRUE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CloseDay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CloseDay - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ReopenDay снимает переопределение с даты, возвращая её к состоянию
// "открыта по умолчанию". Идемпотентно.
func (r *Repository) ReopenDay(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_overrides").
		Where(squirrel.Eq{"day": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReopenDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReopenDay - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ReopenAll снимает все переопределения (административный сброс расписания)
func (r *Repository) ReopenAll(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_overrides").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReopenAll - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReopenAll - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ListClosed получает все закрытые даты начиная с from, по возрастанию.
// Используется календарём персонала.
func (r *Repository) ListClosed(ctx context.Context, from time.Time) ([]*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day", "closed", "created_at").
		From("day_overrides").
		Where(squirrel.Eq{"closed": true}).
		Where(squirrel.GtOrEq{"day": from}).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListClosed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DayOverride, 0)

	for rows.Next() {
		var o domain.DayOverride
		var createdAt sql.NullTime

		if err := rows.Scan(&o.Date, &o.Closed, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListClosed - scan row: %v", ErrScanRow, err)
		}

		o.CreatedAt = createdAt.Time
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClosed - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}
