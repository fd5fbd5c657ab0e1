package inventory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// SlotRepository интерфейс репозитория рабочих дней и слотов
type SlotRepository interface {
	EnsureWorkingDay(ctx context.Context, date time.Time) (bool, error)
	SetDayClosed(ctx context.Context, date time.Time, closed bool) error
	GetWorkingDay(ctx context.Context, date time.Time) (*domain.WorkingDay, error)
	DeleteWorkingDay(ctx context.Context, date time.Time) error
	ListOpenDays(ctx context.Context, from, to time.Time) ([]time.Time, error)
	CreateSlots(ctx context.Context, date time.Time, times []types.TimeString, masterIDs []int64) (int, error)
	GetSlot(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error)
	DeleteSlot(ctx context.Context, key domain.SlotKey) error
	ListAvailableTimes(ctx context.Context, date time.Time, masterID int64) ([]types.TimeString, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
	Reserve(ctx context.Context, key domain.SlotKey, userID int64) (bool, error)
	Release(ctx context.Context, key domain.SlotKey) error
}

// BookingCounter считает записи на дату
type BookingCounter interface {
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// MasterRepository интерфейс чтения мастеров
type MasterRepository interface {
	ListActiveMasters(ctx context.Context, hallID *int64) ([]*domain.Master, error)
	GetMaster(ctx context.Context, id int64) (*domain.Master, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics метрики бронирования слотов
type Metrics interface {
	IncSlotReservation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
