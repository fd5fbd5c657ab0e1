package reports

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Service сервис отчетов по выручке
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(repo Repository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Monthly строит отчет за месяц: количество и сумма по каждой услуге каждого зала
// Сумма считается по текущей цене услуги
func (s *Service) Monthly(ctx context.Context, year, month int, hallID *int64) (*domain.MonthlyReport, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d-%02d", ErrInvalidPeriod, year, month)
	}

	lines, err := s.repo.Monthly(ctx, year, month, hallID)
	if err != nil {
		s.logger.Error("Monthly: %d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: Monthly - repository error: %v", ErrInternal, err)
	}

	report := &domain.MonthlyReport{
		Year:   year,
		Month:  month,
		HallID: hallID,
		Lines:  lines,
	}
	for _, line := range lines {
		report.TotalCount += line.Count
		report.Total += line.Total
	}

	s.logger.Info("Monthly: %d-%02d, lines=%d, bookings=%d, total=%d",
		year, month, len(lines), report.TotalCount, report.Total)
	return report, nil
}
