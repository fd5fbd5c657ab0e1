package client_messages

import "context"

type NotificationService interface {
	SendToClient(ctx context.Context, userID int64, text string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
