package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers/blacklist"
	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	catalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/catalog"
	clientMessagesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/client_messages"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getActiveBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_active_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getDayBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_day_bookings"
	manageScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/manage_schedule"
	reminderFailuresHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reminder_failures"
	reportsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reports"
	reviewsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reviews"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	blacklistRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/blacklist"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/migrate"
	reminderRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reminder"
	reportRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/report"
	reviewRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/review"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/telegram"
	blacklistService "github.com/m04kA/SMC-SalonBooking/internal/service/blacklist"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	inventoryService "github.com/m04kA/SMC-SalonBooking/internal/service/inventory"
	notificationsService "github.com/m04kA/SMC-SalonBooking/internal/service/notifications"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reminders"
	reportsService "github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	reviewsService "github.com/m04kA/SMC-SalonBooking/internal/service/reviews"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const telegramTimeout = 10 * time.Second

type notifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking (%s)...", cfg.Salon.Name)
	log.Info("Configuration loaded from %s", *configPath)

	loc, err := cfg.Salon.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Salon.Timezone, err)
	}

	// Метрики. nil-коллектор безопасен, все методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStartup()

	// Проверяем соединение
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		applied, err := migrate.Up(startupCtx, db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %d", applied)
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	reminderRepository := reminderRepo.NewRepository(wrappedDB)
	blacklistRepository := blacklistRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	reportRepository := reportRepo.NewRepository(wrappedDB)

	// Канал доставки сообщений
	var messenger notifier
	if cfg.Telegram.BotToken != "" {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, telegramTimeout, log)
		if err != nil {
			log.Fatal("Failed to initialize telegram client: %v", err)
		}
		messenger = client
	} else {
		log.Warn("Telegram bot token is empty, notifications will be written to log only")
		messenger = telegram.NewLogNotifier(log)
	}

	// Сервисы
	notificationSvc := notificationsService.NewService(messenger, cfg.Salon.AdminIDs, log)
	blacklistSvc := blacklistService.NewService(blacklistRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	inventorySvc := inventoryService.NewService(
		slotRepository,
		bookingRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		cfg.Inventory,
		loc,
		log,
	)
	scheduler := reminders.NewScheduler(
		reminderRepository,
		bookingRepository,
		messenger,
		txMgr,
		metricsCollector,
		cfg.Reminder,
		loc,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		inventorySvc,
		scheduler,
		blacklistSvc,
		notificationSvc,
		txMgr,
		loc,
		log,
	)
	reviewSvc := reviewsService.NewService(reviewRepository, bookingRepository, notificationSvc, log)
	reportSvc := reportsService.NewService(reportRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		inventorySvc,
		blacklistSvc,
		scheduler,
		notificationSvc,
		txMgr,
		loc,
		log,
	)

	// Восстанавливаем таймеры напоминаний до приема запросов
	stats, err := scheduler.Recover(startupCtx)
	if err != nil {
		log.Fatal("Failed to recover reminders: %v", err)
	}
	log.Info("Reminders recovered: armed=%d, overdue=%d, expired=%d, orphaned=%d, already_sent=%d, backfilled=%d",
		stats.Armed, stats.Overdue, stats.Expired, stats.Orphaned, stats.AlreadySent, stats.Backfilled)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	availableSlots := getAvailableSlotsHandler.NewHandler(inventorySvc, log)
	activeBooking := getActiveBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	dayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	schedule := manageScheduleHandler.NewHandler(inventorySvc, log)
	blacklistH := blacklist.NewHandler(blacklistSvc, log)
	reviewsH := reviewsHandler.NewHandler(reviewSvc, log)
	reports := reportsHandler.NewHandler(reportSvc, log)
	clientMessages := clientMessagesHandler.NewHandler(notificationSvc, log)
	reminderFailures := reminderFailuresHandler.NewHandler(scheduler, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/working-days", availableSlots.HandleWorkingDays).Methods(http.MethodGet)
	api.HandleFunc("/halls", catalog.HandleListHalls).Methods(http.MethodGet)
	api.HandleFunc("/halls/{hallId}/masters", catalog.HandleListMasters).Methods(http.MethodGet)
	api.HandleFunc("/halls/{hallId}/services", catalog.HandleListServices).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}/available-slots", availableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// CUSTOMER ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/active", activeBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews", reviewsH.HandleAdd).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (ID из salon.admin_ids)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly(cfg.Salon))

	// --- Расписание ---
	admin.HandleFunc("/working-days", schedule.HandleAddDay).Methods(http.MethodPost)
	admin.HandleFunc("/working-days/{date}", schedule.HandleCloseDay).Methods(http.MethodPatch)
	admin.HandleFunc("/working-days/{date}", schedule.HandleRemoveDay).Methods(http.MethodDelete)
	admin.HandleFunc("/working-days/{date}/slots", schedule.HandleDaySlots).Methods(http.MethodGet)
	admin.HandleFunc("/slots", schedule.HandleAddSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots", schedule.HandleRemoveSlot).Methods(http.MethodDelete)

	// --- Записи ---
	admin.HandleFunc("/bookings", dayBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.HandleAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/ban", cancelBooking.HandleBan).Methods(http.MethodPost)

	// --- Черный список ---
	admin.HandleFunc("/blacklist", blacklistH.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/blacklist", blacklistH.HandleAdd).Methods(http.MethodPost)
	admin.HandleFunc("/blacklist/{userId}", blacklistH.HandleRemove).Methods(http.MethodDelete)

	// --- Отзывы ---
	admin.HandleFunc("/reviews", reviewsH.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/stats", reviewsH.HandleStats).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/{reviewId}", reviewsH.HandleDelete).Methods(http.MethodDelete)

	// --- Отчеты, сообщения, напоминания ---
	admin.HandleFunc("/reports/monthly", reports.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/clients/{userId}/messages", clientMessages.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reminders/failures", reminderFailures.Handle).Methods(http.MethodGet)

	// --- Каталог ---
	admin.HandleFunc("/halls/{hallId}", catalog.HandleRenameHall).Methods(http.MethodPatch)
	admin.HandleFunc("/masters", catalog.HandleAddMaster).Methods(http.MethodPost)
	admin.HandleFunc("/masters/{masterId}/deactivate", catalog.HandleDeactivateMaster).Methods(http.MethodPatch)
	admin.HandleFunc("/services", catalog.HandleAddService).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}/price", catalog.HandleUpdatePrice).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	// Сначала дожидаемся текущих запросов, затем гасим таймеры
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	scheduler.Stop()
	log.Info("Reminder scheduler stopped, pending tasks stay in database")

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
