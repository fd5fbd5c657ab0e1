package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID    int64            // Telegram ID клиента
	Name      string           // Имя клиента
	Phone     string           // Телефон клиента
	ServiceID int64            // ID услуги
	HallID    int64            // ID зала
	MasterID  int64            // ID мастера
	Date      time.Time        // Дата визита (без времени)
	Time      types.TimeString // Время слота, например "14:00"
}
