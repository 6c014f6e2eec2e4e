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

	"github.com/go-co-op/gocron/v2"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/cancel_booking"
	cancelWaitlistHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/cancel_waitlist"
	checkInBookingHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/check_in_booking"
	createBookingHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/get_user_bookings"
	getUserWaitlistHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/get_user_waitlist"
	joinWaitlistHandler "github.com/campushub/CB-ReservationService/internal/api/handlers/join_waitlist"
	"github.com/campushub/CB-ReservationService/internal/api/middleware"
	"github.com/campushub/CB-ReservationService/internal/config"
	"github.com/campushub/CB-ReservationService/internal/domain"
	bookingRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
	notificationRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/notification"
	waitlistRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/waitlist"
	deliveryServiceClient "github.com/campushub/CB-ReservationService/internal/integrations/deliveryservice"
	resourceCatalogClient "github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
	bookingsService "github.com/campushub/CB-ReservationService/internal/service/bookings"
	notificationsService "github.com/campushub/CB-ReservationService/internal/service/notifications"
	waitlistService "github.com/campushub/CB-ReservationService/internal/service/waitlist"
	cancelBookingUC "github.com/campushub/CB-ReservationService/internal/usecase/cancel_booking"
	checkInBookingUC "github.com/campushub/CB-ReservationService/internal/usecase/check_in_booking"
	createBookingUC "github.com/campushub/CB-ReservationService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/campushub/CB-ReservationService/internal/usecase/get_available_slots"
	promoteWaitlistUC "github.com/campushub/CB-ReservationService/internal/usecase/promote_waitlist"
	"github.com/campushub/CB-ReservationService/pkg/dbmetrics"
	"github.com/campushub/CB-ReservationService/pkg/logger"
	"github.com/campushub/CB-ReservationService/pkg/metrics"
	"github.com/campushub/CB-ReservationService/pkg/simpletxmanager"
	"github.com/campushub/CB-ReservationService/pkg/txmanager"
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

	log.Info("Starting CB-ReservationService...")
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

	// Инициализируем интеграционных клиентов
	catalogClient := resourceCatalogClient.NewClient(
		cfg.ResourceCatalog.URL,
		time.Duration(cfg.ResourceCatalog.Timeout)*time.Second,
		log,
	)
	deliveryClient := deliveryServiceClient.NewClient(
		cfg.DeliveryService.URL,
		time.Duration(cfg.DeliveryService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ResourceCatalog=%s timeout=%ds, DeliveryService=%s timeout=%ds)",
		cfg.ResourceCatalog.URL, cfg.ResourceCatalog.Timeout, cfg.DeliveryService.URL, cfg.DeliveryService.Timeout)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		waitlistRepository     *waitlistRepo.Repository
		notificationRepository *notificationRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		domain.DefaultSweepBatchSize,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		cfg.Booking.WaitlistExpiryDays,
		log,
	)
	notificationSvc := notificationsService.NewService(
		notificationRepository,
		deliveryClient,
		domain.DefaultDispatchBatchSize,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		notificationRepository,
		catalogClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogClient,
		log,
	)
	promoteWaitlistUseCase := promoteWaitlistUC.NewUseCase(
		waitlistRepository,
		notificationRepository,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		notificationRepository,
		promoteWaitlistUseCase,
		txMgr,
		log,
	)
	checkInBookingUseCase := checkInBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(
		getAvailableSlotsUseCase, cfg.Booking.DefaultGranularityMinutes, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkInBooking := checkInBookingHandler.NewHandler(checkInBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	getUserWaitlist := getUserWaitlistHandler.NewHandler(waitlistSvc, log)
	cancelWaitlist := cancelWaitlistHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты ресурса на дату
	api.HandleFunc("/resources/{resourceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметка о прибытии
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkInBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	// Постановка в лист ожидания
	protected.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// Записи листа ожидания пользователя
	protected.HandleFunc("/users/{userId}/waitlist", getUserWaitlist.Handle).Methods(http.MethodGet)

	// Отмена записи листа ожидания
	protected.HandleFunc("/waitlist/{entryId}/cancel", cancelWaitlist.Handle).Methods(http.MethodPatch)

	// Настраиваем планировщик фоновых задач
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal("Failed to create scheduler: %v", err)
	}

	jobCtx := context.Background()

	// Завершение истекших бронирований (completed / no_show)
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(cfg.Booking.LifecycleSweepSeconds)*time.Second),
		gocron.NewTask(func() {
			if _, err := bookingSvc.FinishElapsed(jobCtx); err != nil {
				log.Error("Lifecycle sweep failed: %v", err)
				observeSweep(metricsCollector, "lifecycle", "error")
				return
			}
			observeSweep(metricsCollector, "lifecycle", "ok")
		}),
	)
	if err != nil {
		log.Fatal("Failed to schedule lifecycle sweep: %v", err)
	}

	// Экспирация записей листа ожидания
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(cfg.Booking.WaitlistSweepSeconds)*time.Second),
		gocron.NewTask(func() {
			if _, err := promoteWaitlistUseCase.SweepExpired(jobCtx); err != nil {
				log.Error("Waitlist expiry sweep failed: %v", err)
				observeSweep(metricsCollector, "waitlist_expiry", "error")
				return
			}
			observeSweep(metricsCollector, "waitlist_expiry", "ok")
		}),
	)
	if err != nil {
		log.Fatal("Failed to schedule waitlist expiry sweep: %v", err)
	}

	// Передача накопленных notification intents сервису доставки
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(cfg.Booking.DispatchSweepSeconds)*time.Second),
		gocron.NewTask(func() {
			if _, err := notificationSvc.DispatchPending(jobCtx); err != nil {
				log.Error("Notification dispatch failed: %v", err)
				observeSweep(metricsCollector, "notification_dispatch", "error")
				return
			}
			observeSweep(metricsCollector, "notification_dispatch", "ok")
		}),
	)
	if err != nil {
		log.Fatal("Failed to schedule notification dispatch: %v", err)
	}

	scheduler.Start()
	log.Info("Background jobs scheduled (lifecycle=%ds, waitlist=%ds, dispatch=%ds)",
		cfg.Booking.LifecycleSweepSeconds, cfg.Booking.WaitlistSweepSeconds, cfg.Booking.DispatchSweepSeconds)

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

	// Останавливаем планировщик фоновых задач
	if err := scheduler.Shutdown(); err != nil {
		log.Error("Failed to shut down scheduler: %v", err)
	}

	// Дожидаемся запущенных промоушенов листа ожидания
	cancelBookingUseCase.Wait()

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
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func observeSweep(m *metrics.Metrics, sweep, status string) {
	if m == nil {
		return
	}
	m.SweepRunsTotal.WithLabelValues(sweep, status).Inc()
}
