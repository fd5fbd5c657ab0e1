package catalog

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

// ListActiveMasters возвращает активных мастеров
// Если hallID == nil, возвращаются мастера всех залов
func (r *Repository) ListActiveMasters(ctx context.Context, hallID *int64) ([]*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "hall_id", "is_active").
		From("masters").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("hall_id ASC", "id ASC")

	if hallID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"hall_id": *hallID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveMasters - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveMasters - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	masters := make([]*domain.Master, 0)
	for rows.Next() {
		var m domain.Master
		if err := rows.Scan(&m.ID, &m.Name, &m.HallID, &m.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListActiveMasters - scan master: %v", ErrScanRow, err)
		}
		masters = append(masters, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveMasters - rows error: %v", ErrScanRow, err)
	}

	return masters, nil
}

// GetMaster получает мастера по ID (в том числе неактивного)
func (r *Repository) GetMaster(ctx context.Context, id int64) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "hall_id", "is_active").
		From("masters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMaster - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Master
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.Name, &m.HallID, &m.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMaster - scan master: %v", ErrScanRow, err)
	}

	return &m, nil
}

// CreateMaster добавляет мастера в зал
func (r *Repository) CreateMaster(ctx context.Context, master *domain.Master) (*domain.Master, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("masters").
		Columns("name", "hall_id", "is_active").
		Values(master.Name, master.HallID, true).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMaster - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&master.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateMaster - execute insert: %v", ErrExecQuery, err)
	}
	master.IsActive = true

	return master, nil
}

// DeactivateMaster снимает мастера с активной работы
func (r *Repository) DeactivateMaster(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("masters").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeactivateMaster - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeactivateMaster - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeactivateMaster - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMasterNotFound
	}

	return nil
}
