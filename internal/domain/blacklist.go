package domain

import "time"

type BlacklistEntry struct {
	UserID  int64
	Reason  string
	AddedAt time.Time
}
