package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotsService/pkg/psqlbuilder"
)

const tableName = "weekly_availability"

var columns = []string{
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"updated_at",
}

// Repository репозиторий недельного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAll возвращает все записи расписания, отсортированные по дню недели.
// Дни без записи в результат не попадают
func (r *Repository) ListAll(ctx context.Context) ([]domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("day_of_week").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.WeeklyAvailability, 0, domain.DaysInWeek)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan record: %v", ErrScanRow, err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - iterate rows: %w", ErrExecQuery, err)
	}

	return result, nil
}

// GetByDay возвращает запись для дня недели или ErrNotFound
func (r *Repository) GetByDay(ctx context.Context, dayOfWeek int) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	record, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan record: %w", ErrScanRow, err)
	}

	return &record, nil
}

// Upsert создает или полностью заменяет запись для дня недели
func (r *Repository) Upsert(ctx context.Context, record *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("day_of_week", "start_time", "end_time", "is_active").
		Values(record.DayOfWeek, record.StartTime, record.EndTime, record.IsActive).
		Suffix("ON CONFLICT (day_of_week) DO UPDATE SET " +
			"start_time = EXCLUDED.start_time, " +
			"end_time = EXCLUDED.end_time, " +
			"is_active = EXCLUDED.is_active, " +
			"updated_at = NOW() " +
			"RETURNING day_of_week, start_time, end_time, is_active, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return &saved, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (domain.WeeklyAvailability, error) {
	var record domain.WeeklyAvailability
	var updatedAt sql.NullTime

	err := row.Scan(
		&record.DayOfWeek,
		&record.StartTime,
		&record.EndTime,
		&record.IsActive,
		&updatedAt,
	)
	if err != nil {
		return domain.WeeklyAvailability{}, err
	}

	record.UpdatedAt = updatedAt.Time
	return record, nil
}
