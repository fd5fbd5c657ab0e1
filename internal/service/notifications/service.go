package notifications

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Service сообщения администраторам и клиентам
type Service struct {
	notifier Notifier
	adminIDs []int64
	logger   Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notifier Notifier, adminIDs []int64, logger Logger) *Service {
	return &Service{
		notifier: notifier,
		adminIDs: adminIDs,
		logger:   logger,
	}
}

// NotifyAdmins рассылает сообщение всем администраторам
// Ошибки доставки только логируются
func (s *Service) NotifyAdmins(ctx context.Context, text string) {
	for _, adminID := range s.adminIDs {
		if err := s.notifier.Send(ctx, adminID, text); err != nil {
			s.logger.Warn("NotifyAdmins: failed to notify admin=%d: %v", adminID, err)
		}
	}
}

// NotifyNewBooking сообщает администраторам о новой записи
func (s *Service) NotifyNewBooking(ctx context.Context, b *domain.Booking) {
	text := fmt.Sprintf("🆕 <b>Новая запись</b>\n\n👤 %s\n📞 %s\n💅 %s (%s)\n👩 %s\n📅 %s в %s\n🆔 <code>%d</code>",
		html.EscapeString(b.Name),
		html.EscapeString(b.Phone),
		html.EscapeString(b.ServiceName),
		html.EscapeString(b.HallName),
		html.EscapeString(b.MasterName),
		b.Date.Format("02.01.2006"),
		b.Time,
		b.UserID,
	)
	s.NotifyAdmins(ctx, text)
}

// NotifyCancellation сообщает клиенту, что его запись отменена администратором
func (s *Service) NotifyCancellation(ctx context.Context, b *domain.Booking) {
	text := fmt.Sprintf("❌ <b>Ваша запись отменена</b>\n\n%s, %s в %s",
		html.EscapeString(b.ServiceName), b.Date.Format("02.01.2006"), b.Time)
	if err := s.notifier.Send(ctx, b.UserID, text); err != nil {
		s.logger.Warn("NotifyCancellation: failed to notify user=%d: %v", b.UserID, err)
	}
}

// SendToClient отправляет клиенту сообщение от администратора
func (s *Service) SendToClient(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if text == "" || len([]rune(text)) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message must be 1..%d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	msg := "📩 <b>Сообщение от администратора</b>\n\n" + html.EscapeString(text)
	if err := s.notifier.Send(ctx, userID, msg); err != nil {
		s.logger.Error("SendToClient: user=%d: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("SendToClient: message delivered to user=%d", userID)
	return nil
}
