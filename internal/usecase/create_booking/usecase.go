package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reminders"
)

// UseCase use case для создания записи
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	inventory    Inventory
	blacklist    BlacklistChecker
	scheduler    ReminderScheduler
	notifier     AdminNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	inventory Inventory,
	blacklist BlacklistChecker,
	scheduler ReminderScheduler,
	notifier AdminNotifier,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		inventory:    inventory,
		blacklist:    blacklist,
		scheduler:    scheduler,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Резервирование слота и вставка записи идут в одной транзакции:
// при любой ошибке слот освобождается откатом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: user=%d, hall=%d, service=%d, master=%d, date=%s, time=%s",
		req.UserID, req.HallID, req.ServiceID, req.MasterID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Визит не в прошлом
	now := uc.timeProvider.Now().In(uc.loc)
	appointment, err := req.Time.On(req.Date, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !appointment.After(now) {
		uc.logger.Warn("CreateBooking: user=%d, appointment %s is in the past", req.UserID, appointment.Format(time.RFC3339))
		return nil, ErrTooLateToBook
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	// 3. Черный список
	blacklisted, err := uc.blacklist.IsBlacklisted(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check blacklist for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check blacklist: %v", ErrInternal, err)
	}
	if blacklisted {
		uc.logger.Warn("CreateBooking: user=%d is blacklisted", req.UserID)
		return nil, ErrBlacklisted
	}

	// 4. Каталог: услуга и мастер должны принадлежать залу
	hall, service, master, err := uc.resolveCatalog(ctx, req)
	if err != nil {
		return nil, err
	}

	var result *domain.Booking

	// 5. Транзакция: блокировка клиента, проверка активной записи, резерв слота, вставка
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Параллельные запросы одного клиента выполняются по очереди
		if err := uc.bookingRepo.LockCustomer(txCtx, req.UserID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to lock customer: %v", ErrInternal, err)
		}

		// 5.2. Не более одной активной записи
		latest, err := uc.bookingRepo.GetLatestByUserID(txCtx, req.UserID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: failed to get latest booking for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get latest booking: %v", ErrInternal, err)
		}
		if latest != nil && latest.IsActiveOn(today) {
			uc.logger.Warn("CreateBooking: user=%d already has booking id=%d", req.UserID, latest.ID)
			return ErrActiveBookingExists
		}

		// 5.3. День открыт
		open, err := uc.inventory.IsDayOpen(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to check day: %v", ErrInternal, err)
		}
		if !open {
			uc.logger.Warn("CreateBooking: day %s is not available", req.Date.Format(domain.DateFormat))
			return ErrDayNotAvailable
		}

		// 5.4. Резерв слота
		key := domain.SlotKey{Date: req.Date, Time: req.Time, MasterID: req.MasterID}
		reserved, err := uc.inventory.ReserveSlot(txCtx, key, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
		if !reserved {
			uc.logger.Warn("CreateBooking: slot %s is not available for user=%d", key, req.UserID)
			return ErrSlotNotAvailable
		}

		// 5.5. Запись с денормализованными названиями
		booking := &domain.Booking{
			UserID:      req.UserID,
			Name:        req.Name,
			Phone:       req.Phone,
			ServiceID:   service.ID,
			HallID:      hall.ID,
			MasterID:    master.ID,
			Date:        req.Date,
			Time:        req.Time,
			ServiceName: service.Name,
			HallName:    hall.Name,
			MasterName:  master.Name,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. После коммита: напоминание. Ошибка не отменяет запись, задачу восстановит Recover
	if _, err := uc.scheduler.Schedule(ctx, reminders.RequestFromBooking(result)); err != nil {
		uc.logger.Error("CreateBooking: booking id=%d, failed to schedule reminder: %v", result.ID, err)
	}

	// 7. Уведомление администраторов
	uc.notifier.NotifyNewBooking(ctx, result)

	return result, nil
}

func (uc *UseCase) resolveCatalog(ctx context.Context, req *Request) (*domain.Hall, *domain.Service, *domain.Master, error) {
	hall, err := uc.catalogRepo.GetHall(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrHallNotFound) {
			return nil, nil, nil, ErrHallNotFound
		}
		return nil, nil, nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, nil, nil, ErrServiceNotFound
		}
		return nil, nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	master, err := uc.catalogRepo.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrMasterNotFound) {
			uc.logger.Warn("CreateBooking: master id=%d not found", req.MasterID)
			return nil, nil, nil, ErrMasterNotFound
		}
		return nil, nil, nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.IsActive {
		uc.logger.Warn("CreateBooking: master id=%d is deactivated", req.MasterID)
		return nil, nil, nil, ErrMasterNotFound
	}

	if service.HallID != hall.ID || master.HallID != hall.ID {
		uc.logger.Warn("CreateBooking: hall=%d, service hall=%d, master hall=%d",
			hall.ID, service.HallID, master.HallID)
		return nil, nil, nil, ErrHallMismatch
	}

	return hall, service, master, nil
}
