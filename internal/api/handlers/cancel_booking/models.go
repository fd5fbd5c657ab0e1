package cancel_booking

// BanRequest HTTP request model
type BanRequest struct {
	Reason string `json:"reason"`
}

const defaultBanReason = "заблокирован администратором"

// ReasonOrDefault причина блокировки или текст по умолчанию
func (r *BanRequest) ReasonOrDefault() string {
	if r.Reason == "" {
		return defaultBanReason
	}
	return r.Reason
}
