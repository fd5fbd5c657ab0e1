package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// WorkingDay рабочий день салона
// Закрытый день сохраняет слоты, но не показывается клиентам
type WorkingDay struct {
	ID       int64
	Date     time.Time
	IsClosed bool
}

// TimeSlot бронируемый слот мастера
type TimeSlot struct {
	ID       int64
	Date     time.Time
	Time     types.TimeString
	MasterID int64
	IsBooked bool
	BookedBy *int64
}

// SlotKey уникальный ключ слота (date, time, master_id)
type SlotKey struct {
	Date     time.Time
	Time     types.TimeString
	MasterID int64
}

func (k SlotKey) String() string {
	return k.Date.Format(DateFormat) + " " + k.Time.String() + " master=" + itoa(k.MasterID)
}
