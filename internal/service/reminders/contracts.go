package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// TaskRepository интерфейс репозитория задач напоминаний
type TaskRepository interface {
	Upsert(ctx context.Context, task *domain.ReminderTask) error
	Delete(ctx context.Context, bookingID int64) error
	ListPending(ctx context.Context) ([]*domain.PendingReminder, error)
	RecordAttempt(ctx context.Context, bookingID int64, attempts int, lastError string) error
	CreateFailure(ctx context.Context, failure *domain.ReminderFailure) error
	ListFailures(ctx context.Context, limit int) ([]*domain.ReminderFailure, error)
}

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64) error
	ListAwaitingReminder(ctx context.Context, from time.Time) ([]*domain.Booking, error)
}

// Notifier доставка сообщений клиенту
type Notifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock источник времени и таймеров
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer взведенный таймер
type Timer interface {
	Stop() bool
}

// Metrics метрики напоминаний
type Metrics interface {
	IncReminder(result string)
	SetRemindersPending(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealClock системные часы
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
