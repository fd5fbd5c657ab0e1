package reminders

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

const reminderHeader = "💅 <b>Напоминание</b>\n\n"

type entry struct {
	timer    Timer
	attempts int
}

// Scheduler планировщик напоминаний о визите
// Задачи хранятся в БД, в памяти держится только таймер на каждую запись
type Scheduler struct {
	taskRepo    TaskRepository
	bookingRepo BookingRepository
	notifier    Notifier
	txManager   TransactionManager
	clock       Clock
	metrics     Metrics
	cfg         config.ReminderConfig
	loc         *time.Location
	logger      Logger

	mu      sync.Mutex
	timers  map[int64]*entry
	stopped bool
	wg      sync.WaitGroup

	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewScheduler создает планировщик напоминаний
func NewScheduler(
	taskRepo TaskRepository,
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	cfg config.ReminderConfig,
	loc *time.Location,
	logger Logger,
) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		taskRepo:    taskRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txManager:   txManager,
		clock:       RealClock{},
		metrics:     metrics,
		cfg:         cfg,
		loc:         loc,
		logger:      logger,
		timers:      make(map[int64]*entry),
		baseCtx:     ctx,
		cancel:      cancel,
	}
}

// Schedule сохраняет задачу и взводит таймер на (время визита - lead)
// Если момент напоминания уже наступил, ничего не делает и возвращает false
// Повторный вызов для той же записи заменяет время
func (s *Scheduler) Schedule(ctx context.Context, req ReminderRequest) (bool, error) {
	if req.BookingID <= 0 {
		return false, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if s.isStopped() {
		return false, ErrStopped
	}

	appointment, err := req.Time.On(req.Date, s.loc)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fireAt := appointment.Add(-s.cfg.Lead())
	now := s.clock.Now()
	if !fireAt.After(now) {
		s.logger.Info("Schedule: booking id=%d, reminder time %s already passed, skipping",
			req.BookingID, fireAt.Format(time.RFC3339))
		return false, nil
	}

	task := &domain.ReminderTask{BookingID: req.BookingID, RemindAt: fireAt}
	if err := s.taskRepo.Upsert(ctx, task); err != nil {
		s.logger.Error("Schedule: booking id=%d, failed to save task: %v", req.BookingID, err)
		return false, fmt.Errorf("%w: Schedule - save task: %v", ErrInternal, err)
	}

	s.arm(req.BookingID, fireAt.Sub(now), 0)

	s.logger.Info("Schedule: booking id=%d, reminder at %s", req.BookingID, fireAt.Format(time.RFC3339))
	return true, nil
}

// Cancel снимает таймер и удаляет задачу. Повторный вызов не ошибка
func (s *Scheduler) Cancel(ctx context.Context, bookingID int64) error {
	s.disarm(bookingID)

	if err := s.taskRepo.Delete(ctx, bookingID); err != nil {
		s.logger.Error("Cancel: booking id=%d, failed to delete task: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - delete task: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d, reminder cancelled", bookingID)
	return nil
}

// Recover восстанавливает таймеры из сохраненных задач при старте
//   - задача без записи удаляется;
//   - задача по записи с отправленным напоминанием удаляется;
//   - будущая задача получает таймер;
//   - просроченная задача отправляется сразу, если визит еще не начался, иначе удаляется.
//
// Затем создаются задачи для записей, у которых их нет (сбой между записью и планированием)
func (s *Scheduler) Recover(ctx context.Context) (RecoveryStats, error) {
	var stats RecoveryStats

	pending, err := s.taskRepo.ListPending(ctx)
	if err != nil {
		s.logger.Error("Recover: failed to load tasks: %v", err)
		return stats, fmt.Errorf("%w: Recover - load tasks: %v", ErrInternal, err)
	}

	now := s.clock.Now()
	for _, p := range pending {
		bookingID := p.Task.BookingID

		switch {
		case p.Booking == nil:
			s.logger.Warn("Recover: task id=%d refers to missing booking id=%d, removing", p.Task.ID, bookingID)
			stats.Orphaned++
			s.dropTask(ctx, bookingID)

		case p.Booking.ReminderSent:
			stats.AlreadySent++
			s.dropTask(ctx, bookingID)

		case p.Task.RemindAt.After(now):
			s.arm(bookingID, p.Task.RemindAt.Sub(now), p.Task.Attempts)
			stats.Armed++

		default:
			appointment, err := p.Booking.AppointmentAt(s.loc)
			if err == nil && appointment.After(now) {
				s.logger.Info("Recover: booking id=%d, reminder overdue since %s, sending now",
					bookingID, p.Task.RemindAt.Format(time.RFC3339))
				s.arm(bookingID, 0, p.Task.Attempts)
				stats.Overdue++
				continue
			}

			s.logger.Warn("Recover: booking id=%d, appointment already passed, dropping reminder", bookingID)
			stats.Expired++
			s.metrics.IncReminder(metrics.ReminderDropped)
			s.dropTask(ctx, bookingID)
		}
	}

	today := now.In(s.loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc)

	awaiting, err := s.bookingRepo.ListAwaitingReminder(ctx, today)
	if err != nil {
		s.logger.Error("Recover: failed to load bookings without tasks: %v", err)
		return stats, fmt.Errorf("%w: Recover - load bookings: %v", ErrInternal, err)
	}

	for _, b := range awaiting {
		scheduled, err := s.Schedule(ctx, RequestFromBooking(b))
		if err != nil {
			s.logger.Error("Recover: booking id=%d, backfill failed: %v", b.ID, err)
			continue
		}
		if scheduled {
			stats.Backfilled++
		}
	}

	s.logger.Info("Recover: armed=%d overdue=%d expired=%d orphaned=%d alreadySent=%d backfilled=%d",
		stats.Armed, stats.Overdue, stats.Expired, stats.Orphaned, stats.AlreadySent, stats.Backfilled)
	return stats, nil
}

// Failures возвращает последние недоставленные напоминания
func (s *Scheduler) Failures(ctx context.Context, limit int) ([]*domain.ReminderFailure, error) {
	failures, err := s.taskRepo.ListFailures(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: Failures - repository error: %v", ErrInternal, err)
	}
	return failures, nil
}

// Stop снимает все таймеры и дожидается отправок, которые уже идут
// Задачи в БД остаются и будут восстановлены при следующем старте
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, id)
	}
	s.metrics.SetRemindersPending(0)
	s.mu.Unlock()

	s.wg.Wait()
	s.cancel()
}

// Pending количество взведенных таймеров
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// arm взводит таймер, заменяя предыдущий для этой записи
func (s *Scheduler) arm(bookingID int64, delay time.Duration, attempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if old, ok := s.timers[bookingID]; ok {
		old.timer.Stop()
	}

	e := &entry{attempts: attempts}
	e.timer = s.clock.AfterFunc(delay, func() {
		s.onTimer(bookingID, e)
	})
	s.timers[bookingID] = e
	s.metrics.SetRemindersPending(len(s.timers))
}

func (s *Scheduler) disarm(bookingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.timers[bookingID]; ok {
		e.timer.Stop()
		delete(s.timers, bookingID)
		s.metrics.SetRemindersPending(len(s.timers))
	}
}

// onTimer срабатывание таймера
// Если таймер уже снят или заменен, отправки нет
func (s *Scheduler) onTimer(bookingID int64, e *entry) {
	s.mu.Lock()
	if s.stopped || s.timers[bookingID] != e {
		s.mu.Unlock()
		return
	}
	delete(s.timers, bookingID)
	s.metrics.SetRemindersPending(len(s.timers))
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	s.fire(bookingID, e.attempts)
}

func (s *Scheduler) fire(bookingID int64, attempts int) {
	ctx, cancel := context.WithTimeout(s.baseCtx, time.Duration(s.cfg.SendTimeout)*time.Second)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Info("fire: booking id=%d no longer exists, dropping reminder", bookingID)
		s.metrics.IncReminder(metrics.ReminderDropped)
		s.dropTask(ctx, bookingID)
		return
	}
	if err != nil {
		s.logger.Error("fire: booking id=%d, failed to load booking: %v", bookingID, err)
		s.handleFailure(ctx, bookingID, 0, "", attempts+1, err)
		return
	}

	if booking.ReminderSent {
		s.logger.Info("fire: booking id=%d already reminded", bookingID)
		s.dropTask(ctx, bookingID)
		return
	}

	text := s.Render(booking)
	if err := s.notifier.Send(ctx, booking.UserID, text); err != nil {
		s.logger.Warn("fire: booking id=%d, send to user=%d failed (attempt %d/%d): %v",
			bookingID, booking.UserID, attempts+1, s.cfg.MaxAttempts, err)
		s.handleFailure(ctx, bookingID, booking.UserID, text, attempts+1, err)
		return
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.MarkReminderSent(txCtx, bookingID); err != nil {
			return err
		}
		return s.taskRepo.Delete(txCtx, bookingID)
	})
	if err != nil {
		// сообщение уже доставлено, задача останется и при рестарте будет отправлена повторно
		s.logger.Error("fire: booking id=%d, reminder sent but state not saved: %v", bookingID, err)
	}

	s.metrics.IncReminder(metrics.ReminderSent)
	s.logger.Info("fire: booking id=%d, reminder sent to user=%d", bookingID, booking.UserID)
}

// handleFailure повторяет отправку через RetryDelay, после MaxAttempts пишет запись о сбое
func (s *Scheduler) handleFailure(ctx context.Context, bookingID, userID int64, text string, attempts int, cause error) {
	if attempts >= s.cfg.MaxAttempts {
		failure := &domain.ReminderFailure{
			BookingID: bookingID,
			UserID:    userID,
			Message:   text,
			Reason:    cause.Error(),
		}
		if err := s.taskRepo.CreateFailure(ctx, failure); err != nil {
			s.logger.Error("fire: booking id=%d, failed to save failure record: %v", bookingID, err)
		}
		s.dropTask(ctx, bookingID)
		s.metrics.IncReminder(metrics.ReminderDeadLetter)
		s.logger.Error("fire: booking id=%d, reminder undelivered after %d attempts: %v", bookingID, attempts, cause)
		return
	}

	if err := s.taskRepo.RecordAttempt(ctx, bookingID, attempts, cause.Error()); err != nil {
		s.logger.Error("fire: booking id=%d, failed to record attempt: %v", bookingID, err)
	}
	s.metrics.IncReminder(metrics.ReminderRetry)
	s.arm(bookingID, s.cfg.RetryDelay(), attempts)
}

func (s *Scheduler) dropTask(ctx context.Context, bookingID int64) {
	if err := s.taskRepo.Delete(ctx, bookingID); err != nil {
		s.logger.Error("booking id=%d, failed to delete reminder task: %v", bookingID, err)
	}
}

// Render текст напоминания по шаблону из конфигурации
// Поддерживаются {service}, {time}, {date}, {master}
func (s *Scheduler) Render(b *domain.Booking) string {
	r := strings.NewReplacer(
		"{service}", html.EscapeString(b.ServiceName),
		"{time}", b.Time.String(),
		"{date}", b.Date.Format("02.01.2006"),
		"{master}", html.EscapeString(b.MasterName),
	)
	return reminderHeader + r.Replace(s.cfg.Text)
}
