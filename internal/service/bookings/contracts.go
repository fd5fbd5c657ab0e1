package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetLatestByUserID(ctx context.Context, userID int64) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// SlotReleaser освобождение слота
type SlotReleaser interface {
	ReleaseSlot(ctx context.Context, key domain.SlotKey) error
}

// ReminderCanceller отмена напоминания
type ReminderCanceller interface {
	Cancel(ctx context.Context, bookingID int64) error
}

// Blacklister добавление клиента в черный список
type Blacklister interface {
	Add(ctx context.Context, userID int64, reason string) (*domain.BlacklistEntry, error)
}

// ClientNotifier уведомление клиента об отмене администратором
type ClientNotifier interface {
	NotifyCancellation(ctx context.Context, b *domain.Booking)
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
