package domain

import "time"

// ReminderTask сохраненная задача напоминания (одна на запись)
type ReminderTask struct {
	ID        int64
	BookingID int64
	RemindAt  time.Time
	Attempts  int
	LastError *string
}

// PendingReminder задача вместе с записью
// Booking == nil означает, что запись уже удалена (осиротевшая задача)
type PendingReminder struct {
	Task    ReminderTask
	Booking *Booking
}

// ReminderFailure напоминание, которое не удалось доставить за все попытки
type ReminderFailure struct {
	ID        int64
	BookingID int64
	UserID    int64
	Message   string
	Reason    string
	FailedAt  time.Time
}
