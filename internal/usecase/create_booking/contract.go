package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reminders"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetLatestByUserID(ctx context.Context, userID int64) (*domain.Booking, error)
	LockCustomer(ctx context.Context, userID int64) error
}

// CatalogRepository интерфейс чтения каталога
type CatalogRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
	GetMaster(ctx context.Context, id int64) (*domain.Master, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// Inventory интерфейс сервиса инвентаря
type Inventory interface {
	IsDayOpen(ctx context.Context, date time.Time) (bool, error)
	ReserveSlot(ctx context.Context, key domain.SlotKey, userID int64) (bool, error)
}

// BlacklistChecker проверка черного списка
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, userID int64) (bool, error)
}

// ReminderScheduler планировщик напоминаний
type ReminderScheduler interface {
	Schedule(ctx context.Context, req reminders.ReminderRequest) (bool, error)
}

// AdminNotifier уведомление администраторов о новой записи
type AdminNotifier interface {
	NotifyNewBooking(ctx context.Context, b *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
