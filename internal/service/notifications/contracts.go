package notifications

import "context"

// Notifier доставка сообщений в Telegram
type Notifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
