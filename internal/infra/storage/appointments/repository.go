package appointments

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotsService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

const tableName = "appointments"

var columns = []string{
	"id",
	"appointment_date",
	"start_time",
	"service_ids",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByDate возвращает все неотмененные записи на дату, по возрастанию времени начала.
// Внутри сериализуемой транзакции чтение по предикату защищает от параллельной вставки на ту же дату
func (r *Repository) GetActiveByDate(ctx context.Context, date types.Date) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByDate - scan appointment: %v", ErrScanRow, err)
		}
		result = append(result, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - iterate rows: %w", ErrExecQuery, err)
	}

	return result, nil
}

// GetByID получает запись по ID.
// В транзакции строка блокируется (FOR UPDATE) до ее завершения
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return &appointment, nil
}

// Create сохраняет новую запись. ID генерирует вызывающая сторона
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"appointment_date",
			"start_time",
			"service_ids",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
		).
		Values(
			appointment.ID,
			appointment.Date,
			appointment.Time,
			pq.Array(appointment.ServiceIDs),
			string(appointment.Status),
			appointment.CustomerName,
			appointment.CustomerEmail,
			appointment.CustomerPhone,
			appointment.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (domain.Appointment, error) {
	var a domain.Appointment
	var status string
	var serviceIDs pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.Date,
		&a.Time,
		&serviceIDs,
		&status,
		&a.CustomerName,
		&a.CustomerEmail,
		&a.CustomerPhone,
		&a.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Appointment{}, err
	}

	a.ServiceIDs = []string(serviceIDs)
	a.Status = domain.AppointmentStatus(status)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}
