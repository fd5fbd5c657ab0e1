package reminders

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ReminderRequest данные записи, достаточные для планирования напоминания
type ReminderRequest struct {
	BookingID   int64
	UserID      int64
	ServiceName string
	Date        time.Time
	Time        types.TimeString
}

// RequestFromBooking строит запрос на напоминание по записи
func RequestFromBooking(b *domain.Booking) ReminderRequest {
	return ReminderRequest{
		BookingID:   b.ID,
		UserID:      b.UserID,
		ServiceName: b.ServiceName,
		Date:        b.Date,
		Time:        b.Time,
	}
}

// RecoveryStats итоги восстановления задач после рестарта
type RecoveryStats struct {
	Armed       int // таймер взведен на сохраненное время
	Overdue     int // время прошло, визит еще впереди: отправка сразу
	Expired     int // время визита прошло: задача удалена
	Orphaned    int // запись удалена: задача удалена
	AlreadySent int // напоминание уже отправлено: задача удалена
	Backfilled  int // записи без задачи, для которых задача создана заново
}
