package reminder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий задач напоминаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория напоминаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет задачу. Повторное планирование для той же записи
// заменяет время и сбрасывает счетчик попыток
func (r *Repository) Upsert(ctx context.Context, task *domain.ReminderTask) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reminder_tasks").
		Columns("booking_id", "remind_at").
		Values(task.BookingID, task.RemindAt).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE
			SET remind_at = EXCLUDED.remind_at, attempts = 0, last_error = NULL
			RETURNING id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&task.ID); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	task.Attempts = 0
	task.LastError = nil

	return nil
}

// Delete удаляет задачу по записи. Отсутствие задачи не ошибка
func (r *Repository) Delete(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reminder_tasks").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ListPending возвращает все сохраненные задачи вместе с записями
// Для осиротевших задач (запись удалена) Booking == nil
func (r *Repository) ListPending(ctx context.Context) ([]*domain.PendingReminder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"rt.id",
		"rt.booking_id",
		"rt.remind_at",
		"rt.attempts",
		"rt.last_error",
		"b.id",
		"b.user_id",
		"b.name",
		"b.service_name",
		"b.master_id",
		"b.date",
		"b.time",
		"b.reminder_sent",
	).
		From("reminder_tasks rt").
		LeftJoin("bookings b ON b.id = rt.booking_id").
		OrderBy("rt.remind_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pending := make([]*domain.PendingReminder, 0)
	for rows.Next() {
		var (
			item         domain.PendingReminder
			lastError    sql.NullString
			bookingID    sql.NullInt64
			userID       sql.NullInt64
			name         sql.NullString
			serviceName  sql.NullString
			masterID     sql.NullInt64
			date         sql.NullTime
			timeOfDay    sql.NullString
			reminderSent sql.NullBool
		)

		err := rows.Scan(
			&item.Task.ID,
			&item.Task.BookingID,
			&item.Task.RemindAt,
			&item.Task.Attempts,
			&lastError,
			&bookingID,
			&userID,
			&name,
			&serviceName,
			&masterID,
			&date,
			&timeOfDay,
			&reminderSent,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPending - scan row: %v", ErrScanRow, err)
		}

		if lastError.Valid {
			item.Task.LastError = &lastError.String
		}

		if bookingID.Valid {
			item.Booking = &domain.Booking{
				ID:           bookingID.Int64,
				UserID:       userID.Int64,
				Name:         name.String,
				ServiceName:  serviceName.String,
				MasterID:     masterID.Int64,
				Date:         date.Time,
				ReminderSent: reminderSent.Bool,
			}
			if err := item.Booking.Time.Scan(timeOfDay.String); err != nil {
				return nil, fmt.Errorf("%w: ListPending - scan time: %v", ErrScanRow, err)
			}
		}

		pending = append(pending, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPending - rows error: %v", ErrScanRow, err)
	}

	return pending, nil
}

// RecordAttempt сохраняет номер неудачной попытки и текст ошибки
func (r *Repository) RecordAttempt(ctx context.Context, bookingID int64, attempts int, lastError string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reminder_tasks").
		Set("attempts", attempts).
		Set("last_error", lastError).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordAttempt - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordAttempt - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateFailure сохраняет недоставленное напоминание в dead-letter таблицу
func (r *Repository) CreateFailure(ctx context.Context, failure *domain.ReminderFailure) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reminder_failures").
		Columns("booking_id", "user_id", "message", "reason").
		Values(failure.BookingID, failure.UserID, failure.Message, failure.Reason).
		Suffix("RETURNING id, failed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateFailure - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&failure.ID, &failure.FailedAt); err != nil {
		return fmt.Errorf("%w: CreateFailure - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListFailures возвращает последние недоставленные напоминания
func (r *Repository) ListFailures(ctx context.Context, limit int) ([]*domain.ReminderFailure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "user_id", "message", "reason", "failed_at").
		From("reminder_failures").
		OrderBy("failed_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFailures - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFailures - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	failures := make([]*domain.ReminderFailure, 0)
	for rows.Next() {
		var f domain.ReminderFailure
		if err := rows.Scan(&f.ID, &f.BookingID, &f.UserID, &f.Message, &f.Reason, &f.FailedAt); err != nil {
			return nil, fmt.Errorf("%w: ListFailures - scan row: %v", ErrScanRow, err)
		}
		failures = append(failures, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFailures - rows error: %v", ErrScanRow, err)
	}

	return failures, nil
}
