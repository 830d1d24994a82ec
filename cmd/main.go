package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/cancel_booking"
	closeDayHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/close_day"
	confirmBookingHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/confirm_booking"
	confirmDayHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/confirm_day"
	createBookingHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/create_booking"
	createSlotHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/create_slot"
	getAvailabilityHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/get_availability"
	getBookingHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/get_day_bookings"
	listClosedDaysHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/list_closed_days"
	listSlotsHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/list_slots"
	reopenDayHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/reopen_day"
	resetScheduleHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/reset_schedule"
	setSlotEnabledHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/set_slot_enabled"
	toggleSlotDayHandler "github.com/nguyenhau8209/PetHaven/internal/api/handlers/toggle_slot_day"
	"github.com/nguyenhau8209/PetHaven/internal/api/middleware"
	"github.com/nguyenhau8209/PetHaven/internal/config"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	dayOverrideRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/dayoverride"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
	bookingsService "github.com/nguyenhau8209/PetHaven/internal/service/bookings"
	scheduleService "github.com/nguyenhau8209/PetHaven/internal/service/schedule"
	"github.com/nguyenhau8209/PetHaven/internal/sweeper"
	confirmDayUC "github.com/nguyenhau8209/PetHaven/internal/usecase/confirm_day"
	getAvailabilityUC "github.com/nguyenhau8209/PetHaven/internal/usecase/get_availability"
	reserveSlotUC "github.com/nguyenhau8209/PetHaven/internal/usecase/reserve_slot"
	toggleSlotDayUC "github.com/nguyenhau8209/PetHaven/internal/usecase/toggle_slot_day"
	"github.com/nguyenhau8209/PetHaven/pkg/dbmetrics"
	"github.com/nguyenhau8209/PetHaven/pkg/logger"
	"github.com/nguyenhau8209/PetHaven/pkg/metrics"
	"github.com/nguyenhau8209/PetHaven/pkg/simpletxmanager"
	"github.com/nguyenhau8209/PetHaven/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting PetHaven booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		slotRepository     *slotRepo.Repository
		overrideRepository *dayOverrideRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecases и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		overrideRepository = dayOverrideRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		overrideRepository = dayOverrideRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(
		slotRepository,
		overrideRepository,
		txMgr,
		scheduleService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		slotRepository,
		bookingRepository,
		overrideRepository,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		slotRepository,
		bookingRepository,
		overrideRepository,
		txMgr,
		log,
	)
	toggleSlotDayUseCase := toggleSlotDayUC.NewUseCase(
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)
	confirmDayUseCase := confirmDayUC.NewUseCase(bookingRepository, log)

	// Запускаем фоновую пометку состоявшихся бронирований
	var consumedSweeper *sweeper.Sweeper
	if cfg.Sweeper.Enabled {
		consumedSweeper = sweeper.New(
			bookingRepository,
			scheduleService.RealTimeProvider{},
			log,
			cfg.Sweeper.Schedule,
			time.Duration(cfg.Sweeper.Timeout)*time.Second,
		)
		if err := consumedSweeper.Start(); err != nil {
			log.Fatal("Failed to start sweeper: %v", err)
		}
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listSlots := listSlotsHandler.NewHandler(scheduleSvc, log)
	createBooking := createBookingHandler.NewHandler(reserveSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	closeDay := closeDayHandler.NewHandler(scheduleSvc, log)
	reopenDay := reopenDayHandler.NewHandler(scheduleSvc, log)
	listClosedDays := listClosedDaysHandler.NewHandler(scheduleSvc, log)
	resetSchedule := resetScheduleHandler.NewHandler(scheduleSvc, log)
	confirmDay := confirmDayHandler.NewHandler(confirmDayUseCase, log)
	toggleSlotDay := toggleSlotDayHandler.NewHandler(toggleSlotDayUseCase, log)
	createSlot := createSlotHandler.NewHandler(scheduleSvc, log)
	setSlotEnabled := setSlotEnabledHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Каталог слотов
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.Secret, cfg.Auth.StaffRole))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// STAFF ROUTES (требуют роль персонала)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// Подтверждение бронирования
	staff.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	// Список закрытых дней
	staff.HandleFunc("/schedule/closed-days", listClosedDays.Handle).Methods(http.MethodGet)

	// Сброс расписания к заводскому состоянию
	staff.HandleFunc("/schedule/reset", resetSchedule.Handle).Methods(http.MethodPost)

	// Бронирования даты
	staff.HandleFunc("/schedule/{date}/bookings", getDayBookings.Handle).Methods(http.MethodGet)

	// Закрытие и открытие даты
	staff.HandleFunc("/schedule/{date}/close", closeDay.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/schedule/{date}/close", reopenDay.Handle).Methods(http.MethodDelete)

	// Пакетное подтверждение pending бронирований даты
	staff.HandleFunc("/schedule/{date}/confirm-pending", confirmDay.Handle).Methods(http.MethodPost)

	// Переключение одного слота на один день
	staff.HandleFunc("/schedule/{date}/slots/{slotId}", toggleSlotDay.Handle).Methods(http.MethodPatch)

	// --- Каталог слотов ---
	staff.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/slots/{slotId}", setSlotEnabled.Handle).Methods(http.MethodPatch)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if consumedSweeper != nil {
		consumedSweeper.Stop()
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
