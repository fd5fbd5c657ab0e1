package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service сервис инвентаря: рабочие дни и слоты мастеров
type Service struct {
	slotRepo     SlotRepository
	bookingRepo  BookingCounter
	masterRepo   MasterRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	cfg          config.InventoryConfig
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса инвентаря
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingCounter,
	masterRepo MasterRepository,
	txManager TransactionManager,
	metrics Metrics,
	cfg config.InventoryConfig,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		masterRepo:   masterRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		cfg:          cfg,
		loc:          loc,
		logger:       logger,
	}
}

// AddWorkingDay открывает день и создает по слоту на каждый час окна для каждого активного мастера
// Повторный вызов не создает дубликатов. Возвращает число новых слотов
func (s *Service) AddWorkingDay(ctx context.Context, date time.Time) (int, error) {
	if date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	s.logger.Info("AddWorkingDay: date=%s", date.Format(domain.DateFormat))

	masters, err := s.masterRepo.ListActiveMasters(ctx, nil)
	if err != nil {
		s.logger.Error("AddWorkingDay: failed to list masters: %v", err)
		return 0, fmt.Errorf("%w: AddWorkingDay - list masters: %v", ErrInternal, err)
	}

	masterIDs := make([]int64, 0, len(masters))
	for _, m := range masters {
		masterIDs = append(masterIDs, m.ID)
	}

	var created int
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.EnsureWorkingDay(txCtx, date); err != nil {
			return fmt.Errorf("%w: AddWorkingDay - ensure day: %v", ErrInternal, err)
		}

		created, err = s.slotRepo.CreateSlots(txCtx, date, s.windowTimes(), masterIDs)
		if err != nil {
			return fmt.Errorf("%w: AddWorkingDay - create slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("AddWorkingDay: date=%s: %v", date.Format(domain.DateFormat), err)
		return 0, err
	}

	s.logger.Info("AddWorkingDay: date=%s, masters=%d, new slots=%d",
		date.Format(domain.DateFormat), len(masterIDs), created)
	return created, nil
}

// CloseDay закрывает или открывает день для клиентов. Слоты сохраняются
func (s *Service) CloseDay(ctx context.Context, date time.Time, closed bool) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.slotRepo.SetDayClosed(ctx, date, closed); err != nil {
		s.logger.Error("CloseDay: date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: CloseDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CloseDay: date=%s closed=%t", date.Format(domain.DateFormat), closed)
	return nil
}

// RemoveWorkingDay удаляет день вместе со слотами
// День с записями не удаляется: сначала нужно отменить записи
// Проверка и удаление идут в SERIALIZABLE, чтобы не пропустить запись, созданную параллельно
func (s *Service) RemoveWorkingDay(ctx context.Context, date time.Time) error {
	s.logger.Info("RemoveWorkingDay: date=%s", date.Format(domain.DateFormat))

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.bookingRepo.CountByDate(txCtx, date)
		if err != nil {
			s.logger.Error("RemoveWorkingDay: failed to count bookings: %v", err)
			return fmt.Errorf("%w: RemoveWorkingDay - count bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("RemoveWorkingDay: date=%s has %d bookings", date.Format(domain.DateFormat), count)
			return fmt.Errorf("%w: %d bookings on %s", ErrDayHasBookings, count, date.Format(domain.DateFormat))
		}

		if err := s.slotRepo.DeleteWorkingDay(txCtx, date); err != nil {
			if errors.Is(err, slotRepo.ErrDayNotFound) {
				return ErrDayNotFound
			}
			s.logger.Error("RemoveWorkingDay: repository error: %v", err)
			return fmt.Errorf("%w: RemoveWorkingDay - delete day: %v", ErrInternal, err)
		}
		return nil
	})
}

// AddTimeSlot добавляет слот вручную. День создается при необходимости
func (s *Service) AddTimeSlot(ctx context.Context, key domain.SlotKey) error {
	if err := validateKey(key); err != nil {
		return err
	}

	master, err := s.masterRepo.GetMaster(ctx, key.MasterID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrMasterNotFound) {
			return ErrMasterNotFound
		}
		return fmt.Errorf("%w: AddTimeSlot - get master: %v", ErrInternal, err)
	}
	if !master.IsActive {
		s.logger.Warn("AddTimeSlot: master id=%d is deactivated", key.MasterID)
		return ErrMasterNotFound
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.EnsureWorkingDay(txCtx, key.Date); err != nil {
			return fmt.Errorf("%w: AddTimeSlot - ensure day: %v", ErrInternal, err)
		}
		if _, err := s.slotRepo.CreateSlots(txCtx, key.Date, []types.TimeString{key.Time}, []int64{key.MasterID}); err != nil {
			return fmt.Errorf("%w: AddTimeSlot - create slot: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("AddTimeSlot: slot %s: %v", key, err)
		return err
	}

	s.logger.Info("AddTimeSlot: slot %s added", key)
	return nil
}

// RemoveTimeSlot удаляет свободный слот. Занятый слот удалить нельзя
func (s *Service) RemoveTimeSlot(ctx context.Context, key domain.SlotKey) error {
	if err := validateKey(key); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetSlot(txCtx, key)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: RemoveTimeSlot - get slot: %v", ErrInternal, err)
		}
		if slot.IsBooked {
			return ErrSlotBooked
		}

		if err := s.slotRepo.DeleteSlot(txCtx, key); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: RemoveTimeSlot - delete slot: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("RemoveTimeSlot: slot %s: %v", key, err)
		return err
	}

	s.logger.Info("RemoveTimeSlot: slot %s removed", key)
	return nil
}

// IsDayOpen проверяет, что день рабочий и не закрыт
func (s *Service) IsDayOpen(ctx context.Context, date time.Time) (bool, error) {
	day, err := s.slotRepo.GetWorkingDay(ctx, date)
	if errors.Is(err, slotRepo.ErrDayNotFound) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("IsDayOpen: date=%s: %v", date.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: IsDayOpen - repository error: %v", ErrInternal, err)
	}
	return !day.IsClosed, nil
}

// ListAvailableSlots возвращает свободное время мастера на дату по возрастанию
// Для закрытого или несуществующего дня возвращается пустой список
func (s *Service) ListAvailableSlots(ctx context.Context, date time.Time, masterID int64) ([]types.TimeString, error) {
	day, err := s.slotRepo.GetWorkingDay(ctx, date)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDayNotFound) {
			return []types.TimeString{}, nil
		}
		s.logger.Error("ListAvailableSlots: date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListAvailableSlots - get day: %v", ErrInternal, err)
	}
	if day.IsClosed {
		return []types.TimeString{}, nil
	}

	times, err := s.slotRepo.ListAvailableTimes(ctx, date, masterID)
	if err != nil {
		s.logger.Error("ListAvailableSlots: date=%s master=%d: %v", date.Format(domain.DateFormat), masterID, err)
		return nil, fmt.Errorf("%w: ListAvailableSlots - list times: %v", ErrInternal, err)
	}

	return times, nil
}

// ListWorkingDays возвращает открытые дни в диапазоне [сегодня, сегодня+horizonDays]
// horizonDays <= 0 означает горизонт из конфигурации
func (s *Service) ListWorkingDays(ctx context.Context, horizonDays int) ([]time.Time, error) {
	if horizonDays <= 0 {
		horizonDays = s.cfg.HorizonDays
	}

	today := s.Today()
	days, err := s.slotRepo.ListOpenDays(ctx, today, today.AddDate(0, 0, horizonDays))
	if err != nil {
		s.logger.Error("ListWorkingDays: %v", err)
		return nil, fmt.Errorf("%w: ListWorkingDays - repository error: %v", ErrInternal, err)
	}

	return days, nil
}

// ListDaySlots возвращает все слоты дня, свободные и занятые
func (s *Service) ListDaySlots(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	slots, err := s.slotRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListDaySlots: date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListDaySlots - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// ReserveSlot атомарно занимает слот за клиентом
// false без ошибки означает, что слот уже занят или не существует
func (s *Service) ReserveSlot(ctx context.Context, key domain.SlotKey, userID int64) (bool, error) {
	reserved, err := s.slotRepo.Reserve(ctx, key, userID)
	if err != nil {
		s.metrics.IncSlotReservation(metrics.ReservationError)
		s.logger.Error("ReserveSlot: slot %s user=%d: %v", key, userID, err)
		return false, fmt.Errorf("%w: ReserveSlot - repository error: %v", ErrInternal, err)
	}

	if !reserved {
		s.metrics.IncSlotReservation(metrics.ReservationTaken)
		s.logger.Info("ReserveSlot: slot %s is already taken, user=%d", key, userID)
		return false, nil
	}

	s.metrics.IncSlotReservation(metrics.ReservationReserved)
	s.logger.Info("ReserveSlot: slot %s reserved by user=%d", key, userID)
	return true, nil
}

// ReleaseSlot освобождает слот
func (s *Service) ReleaseSlot(ctx context.Context, key domain.SlotKey) error {
	if err := s.slotRepo.Release(ctx, key); err != nil {
		s.logger.Error("ReleaseSlot: slot %s: %v", key, err)
		return fmt.Errorf("%w: ReleaseSlot - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("ReleaseSlot: slot %s released", key)
	return nil
}

// Today текущая дата в часовом поясе салона (полночь)
func (s *Service) Today() time.Time {
	now := s.timeProvider.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// windowTimes часы окна записи: "10:00", "11:00", ... "19:00"
func (s *Service) windowTimes() []types.TimeString {
	times := make([]types.TimeString, 0, s.cfg.CloseHour-s.cfg.OpenHour+1)
	for h := s.cfg.OpenHour; h <= s.cfg.CloseHour; h++ {
		times = append(times, types.FromHour(h))
	}
	return times
}

func validateKey(key domain.SlotKey) error {
	if key.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if key.MasterID <= 0 {
		return fmt.Errorf("%w: masterID must be positive", ErrInvalidInput)
	}
	if err := key.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}
	return nil
}
