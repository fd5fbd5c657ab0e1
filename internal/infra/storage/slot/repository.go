package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Repository репозиторий рабочих дней и слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// dateParam дата передается строкой, чтобы сравнение с колонкой DATE не зависело от часового пояса
func dateParam(date time.Time) string {
	return date.Format(domain.DateFormat)
}

// EnsureWorkingDay добавляет рабочий день, если его еще нет
// Возвращает true, если день был создан
func (r *Repository) EnsureWorkingDay(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_days").
		Columns("date").
		Values(dateParam(date)).
		Suffix("ON CONFLICT (date) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: EnsureWorkingDay - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureWorkingDay - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: EnsureWorkingDay - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// SetDayClosed создает день (если нужно) и выставляет флаг закрытия
func (r *Repository) SetDayClosed(ctx context.Context, date time.Time, closed bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_days").
		Columns("date", "is_closed").
		Values(dateParam(date), closed).
		Suffix("ON CONFLICT (date) DO UPDATE SET is_closed = EXCLUDED.is_closed").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetDayClosed - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetDayClosed - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetWorkingDay получает рабочий день по дате
func (r *Repository) GetWorkingDay(ctx context.Context, date time.Time) (*domain.WorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "is_closed").
		From("working_days").
		Where(squirrel.Eq{"date": dateParam(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.WorkingDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.Date, &day.IsClosed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingDay - scan day: %v", ErrScanRow, err)
	}

	return &day, nil
}

// DeleteWorkingDay удаляет рабочий день вместе со всеми его слотами
// Должен вызываться внутри транзакции
func (r *Repository) DeleteWorkingDay(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotsQuery, slotsArgs, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"date": dateParam(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteWorkingDay - build slots delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, slotsQuery, slotsArgs...); err != nil {
		return fmt.Errorf("%w: DeleteWorkingDay - delete slots: %v", ErrExecQuery, err)
	}

	dayQuery, dayArgs, err := psqlbuilder.Delete("working_days").
		Where(squirrel.Eq{"date": dateParam(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteWorkingDay - build day delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, dayQuery, dayArgs...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWorkingDay - delete day: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWorkingDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDayNotFound
	}

	return nil
}

// ListOpenDays возвращает незакрытые рабочие дни в диапазоне [from, to] по возрастанию
func (r *Repository) ListOpenDays(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date").
		From("working_days").
		Where(squirrel.GtOrEq{"date": dateParam(from)}).
		Where(squirrel.LtOrEq{"date": dateParam(to)}).
		Where(squirrel.Eq{"is_closed": false}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpenDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: ListOpenDays - scan date: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpenDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// CreateSlots создает слоты для каждой пары (время, мастер)
// Существующие слоты не трогаются. Возвращает число созданных слотов
func (r *Repository) CreateSlots(ctx context.Context, date time.Time, times []types.TimeString, masterIDs []int64) (int, error) {
	if len(times) == 0 || len(masterIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("time_slots").Columns("date", "time", "master_id")
	for _, masterID := range masterIDs {
		for _, t := range times {
			insert = insert.Values(dateParam(date), t, masterID)
		}
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (date, time, master_id) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateSlots - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateSlots - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateSlots - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// GetSlot получает слот по ключу
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetSlot(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "date", "time", "master_id", "is_booked", "booked_by").
		From("time_slots").
		Where(squirrel.Eq{
			"date":      dateParam(key.Date),
			"time":      key.Time,
			"master_id": key.MasterID,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlot - build select query: %v", ErrBuildQuery, err)
	}

	var (
		slot     domain.TimeSlot
		bookedBy sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.Date,
		&slot.Time,
		&slot.MasterID,
		&slot.IsBooked,
		&bookedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlot - scan slot: %v", ErrScanRow, err)
	}

	if bookedBy.Valid {
		slot.BookedBy = &bookedBy.Int64
	}

	return &slot, nil
}

// DeleteSlot удаляет слот по ключу
func (r *Repository) DeleteSlot(ctx context.Context, key domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{
			"date":      dateParam(key.Date),
			"time":      key.Time,
			"master_id": key.MasterID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListAvailableTimes возвращает свободное время мастера на дату по возрастанию
func (r *Repository) ListAvailableTimes(ctx context.Context, date time.Time, masterID int64) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time").
		From("time_slots").
		Where(squirrel.Eq{
			"date":      dateParam(date),
			"master_id": masterID,
			"is_booked": false,
		}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListAvailableTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ListByDate возвращает все слоты на дату (и свободные, и занятые)
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "time", "master_id", "is_booked", "booked_by").
		From("time_slots").
		Where(squirrel.Eq{"date": dateParam(date)}).
		OrderBy("master_id ASC", "time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		var (
			slot     domain.TimeSlot
			bookedBy sql.NullInt64
		)
		if err := rows.Scan(&slot.ID, &slot.Date, &slot.Time, &slot.MasterID, &slot.IsBooked, &bookedBy); err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan slot: %v", ErrScanRow, err)
		}
		if bookedBy.Valid {
			slot.BookedBy = &bookedBy.Int64
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Reserve атомарно занимает слот: один условный UPDATE с проверкой is_booked = FALSE
// Возвращает false, если слот уже занят или не существует
// При конкурентных вызовах ровно один получит true: в READ COMMITTED проигравший UPDATE
// перепроверяет условие после коммита победителя и не находит строку
func (r *Repository) Reserve(ctx context.Context, key domain.SlotKey, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_booked", true).
		Set("booked_by", userID).
		Where(squirrel.Eq{
			"date":      dateParam(key.Date),
			"time":      key.Time,
			"master_id": key.MasterID,
			"is_booked": false,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Release освобождает слот безусловно
// Отсутствие слота не считается ошибкой (день мог быть удален администратором)
func (r *Repository) Release(ctx context.Context, key domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_booked", false).
		Set("booked_by", nil).
		Where(squirrel.Eq{
			"date":      dateParam(key.Date),
			"time":      key.Time,
			"master_id": key.MasterID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
