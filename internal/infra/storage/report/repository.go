package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий отчетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Monthly считает количество записей и выручку по текущей цене услуги за месяц
// Записи, у которых услуга уже удалена, в отчет не попадают
func (r *Repository) Monthly(ctx context.Context, year, month int, hallID *int64) ([]domain.ReportLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	selectBuilder := psqlbuilder.Select(
		"h.id",
		"h.name",
		"s.id",
		"s.name",
		"COUNT(b.id)",
		"COALESCE(SUM(s.price), 0)",
	).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Join("halls h ON h.id = s.hall_id").
		Where(squirrel.GtOrEq{"b.date": from.Format(domain.DateFormat)}).
		Where(squirrel.Lt{"b.date": to.Format(domain.DateFormat)}).
		GroupBy("h.id", "h.name", "s.id", "s.name").
		OrderBy("h.id ASC", "s.id ASC")

	if hallID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"h.id": *hallID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Monthly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Monthly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.ReportLine, 0)
	for rows.Next() {
		var line domain.ReportLine
		if err := rows.Scan(&line.HallID, &line.HallName, &line.ServiceID, &line.ServiceName, &line.Count, &line.Total); err != nil {
			return nil, fmt.Errorf("%w: Monthly - scan line: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Monthly - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}
