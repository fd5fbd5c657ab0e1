package domain

// Hall зал салона (стрижки, ногти)
type Hall struct {
	ID   int64
	Name string
}

// Master мастер, закрепленный за залом
// Деактивированный мастер не получает новых слотов, прошлые записи не меняются
type Master struct {
	ID       int64
	Name     string
	HallID   int64
	IsActive bool
}

// Service услуга зала
type Service struct {
	ID              int64
	Name            string
	HallID          int64
	Price           int
	DurationMinutes int
}
