package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для работы с записями
type Service struct {
	bookingRepo  BookingRepository
	slots        SlotReleaser
	reminders    ReminderCanceller
	blacklist    Blacklister
	notifier     ClientNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	slots SlotReleaser,
	reminders ReminderCanceller,
	blacklist Blacklister,
	notifier ClientNotifier,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slots:        slots,
		reminders:    reminders,
		blacklist:    blacklist,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// GetActiveForCustomer возвращает активную запись клиента
// Берется самая поздняя запись; если ее дата уже прошла, активной записи нет
func (s *Service) GetActiveForCustomer(ctx context.Context, userID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetActiveForCustomer: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetActiveForCustomer - repository error: %v", ErrInternal, err)
	}

	if !booking.IsActiveOn(s.today()) {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// ListForDate возвращает записи на дату
func (s *Service) ListForDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListForDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListForDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForDate: %d bookings on %s", len(bookings), date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запись и освобождает слот в одной транзакции
// requesterID == nil означает отмену администратором, иначе клиент может отменить только свою запись
// После коммита снимается напоминание
func (s *Service) Cancel(ctx context.Context, bookingID int64, requesterID *int64) (*models.CancelResult, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
		}

		if requesterID != nil && booking.UserID != *requesterID {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", *requesterID, bookingID)
			return ErrAccessDenied
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - delete booking: %v", ErrInternal, err)
		}

		if err := s.slots.ReleaseSlot(txCtx, booking.SlotKey()); err != nil {
			return fmt.Errorf("%w: Cancel - release slot: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Cancel: booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	// Задача в БД уже удалена каскадом, снимаем таймер
	if err := s.reminders.Cancel(ctx, bookingID); err != nil {
		s.logger.Error("Cancel: booking id=%d, failed to cancel reminder: %v", bookingID, err)
	}

	if requesterID == nil {
		s.notifier.NotifyCancellation(ctx, cancelled)
	}

	s.logger.Info("Cancel: booking id=%d cancelled, slot %s released", bookingID, cancelled.SlotKey())
	return &models.CancelResult{
		BookingID: cancelled.ID,
		UserID:    cancelled.UserID,
		MasterID:  cancelled.MasterID,
		Date:      cancelled.Date,
		Time:      cancelled.Time,
	}, nil
}

// BanAndCancel добавляет владельца записи в черный список и отменяет запись
func (s *Service) BanAndCancel(ctx context.Context, bookingID int64, reason string) (*models.CancelResult, error) {
	booking, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.blacklist.Add(ctx, booking.UserID, reason); err != nil {
		s.logger.Error("BanAndCancel: failed to blacklist user=%d: %v", booking.UserID, err)
		return nil, fmt.Errorf("%w: BanAndCancel - blacklist: %v", ErrInternal, err)
	}

	s.logger.Info("BanAndCancel: user=%d blacklisted, cancelling booking id=%d", booking.UserID, bookingID)
	return s.Cancel(ctx, bookingID, nil)
}

func (s *Service) today() time.Time {
	now := s.timeProvider.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}
