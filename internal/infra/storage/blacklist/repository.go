package blacklist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий черного списка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черного списка
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert добавляет клиента в черный список или обновляет причину
func (r *Repository) Upsert(ctx context.Context, entry *domain.BlacklistEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blacklist").
		Columns("user_id", "reason").
		Values(entry.UserID, entry.Reason).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET reason = EXCLUDED.reason, added_at = NOW() RETURNING added_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.AddedAt); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete убирает клиента из черного списка
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blacklist").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Get получает запись черного списка по клиенту
func (r *Repository) Get(ctx context.Context, userID int64) (*domain.BlacklistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "reason", "added_at").
		From("blacklist").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.BlacklistEntry
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.UserID, &entry.Reason, &entry.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan entry: %v", ErrScanRow, err)
	}

	return &entry, nil
}

// List возвращает черный список, новые записи первыми
func (r *Repository) List(ctx context.Context) ([]*domain.BlacklistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("user_id", "reason", "added_at").
		From("blacklist").
		OrderBy("added_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BlacklistEntry, 0)
	for rows.Next() {
		var entry domain.BlacklistEntry
		if err := rows.Scan(&entry.UserID, &entry.Reason, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
