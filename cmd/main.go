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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/confirm_booking"
	createAvailabilityHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/create_availability"
	createBookingHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/create_service"
	deleteAvailabilityHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/delete_availability"
	deleteContactHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/delete_contact"
	deleteServiceHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/delete_service"
	getBookingHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/get_booking"
	getServiceHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/get_service"
	listAvailabilitiesHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/list_availabilities"
	listBookingsHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/list_bookings"
	listContactsHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/list_contacts"
	listServicesHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/list_services"
	submitContactHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/submit_contact"
	updateAvailabilityHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/update_availability"
	updateContactHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/update_contact"
	updateServiceHandler "github.com/m04kA/SAMASS-BookingService/internal/api/handlers/update_service"
	"github.com/m04kA/SAMASS-BookingService/internal/api/middleware"
	"github.com/m04kA/SAMASS-BookingService/internal/config"
	bookingRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/booking"
	contactRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/contact"
	serviceRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/service"
	slotRepo "github.com/m04kA/SAMASS-BookingService/internal/infra/storage/slot"
	"github.com/m04kA/SAMASS-BookingService/internal/integrations/mailer"
	availabilityService "github.com/m04kA/SAMASS-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SAMASS-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SAMASS-BookingService/internal/service/catalog"
	contactService "github.com/m04kA/SAMASS-BookingService/internal/service/contact"
	notificationsService "github.com/m04kA/SAMASS-BookingService/internal/service/notifications"
	createBookingUC "github.com/m04kA/SAMASS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/SAMASS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SAMASS-BookingService/pkg/logger"
	"github.com/m04kA/SAMASS-BookingService/pkg/metrics"
	"github.com/m04kA/SAMASS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SAMASS-BookingService/pkg/txmanager"
)

const mailerTimeout = 10 * time.Second

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

	log.Info("Starting SAMASS-BookingService...")
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

	// Применяем миграции
	if err := runMigrations(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied from %s", cfg.Database.MigrationsDir)

	// Инициализируем почтовый клиент
	mailClient := mailer.NewClient(
		cfg.ResendAPIKey,
		mailer.SMTPSettings{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		},
		mailerTimeout,
		log,
	)
	if cfg.ResendAPIKey != "" {
		log.Info("Mailer initialized with Resend API")
	} else {
		log.Info("Mailer initialized with SMTP fallback (host=%s)", cfg.SMTP.Host)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
		serviceRepository *serviceRepo.Repository
		contactRepository *contactRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecase и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Ограничение ожидания блокировки слота: проигравший гонку запрос
	// получает retryable-ошибку вместо бесконечного ожидания
	lockTimeout := time.Duration(cfg.Booking.LockTimeoutMS) * time.Millisecond

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		contactRepository = contactRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB, txmanager.WithLockTimeout(lockTimeout))
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		contactRepository = contactRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db, simpletxmanager.WithLockTimeout(lockTimeout))
	}

	// Инициализируем сервисы
	notifier := notificationsService.NewService(
		mailClient,
		notificationsService.Settings{
			AdminEmail:     cfg.Notifications.AdminEmail,
			FromEmail:      cfg.Notifications.FromEmail,
			AdminPortalURL: cfg.Notifications.AdminPortalURL,
			ContactURL:     cfg.Notifications.ContactURL,
			Location:       cfg.Notifications.Location,
			Parking:        cfg.Notifications.Parking,
			DoorCode:       cfg.Notifications.DoorCode,
			Floor:          cfg.Notifications.Floor,
		},
		log,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		serviceRepository,
		notifier,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(slotRepository, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	contactSvc := contactService.NewService(contactRepository, notifier, log)

	// Инициализируем use case бронирования
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		serviceRepository,
		bookingRepository,
		notifier,
		txMgr,
		createBookingUC.Rules{
			BufferMinutes:  cfg.Booking.BufferMinutes,
			MinLeadMinutes: cfg.Booking.MinLeadMinutes,
		},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	listAvailabilities := listAvailabilitiesHandler.NewHandler(availabilitySvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	submitContact := submitContactHandler.NewHandler(contactSvc, log)
	listContacts := listContactsHandler.NewHandler(contactSvc, log)
	updateContact := updateContactHandler.NewHandler(contactSvc, log)
	deleteContact := deleteContactHandler.NewHandler(contactSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Каталог услуг ---
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	api.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Календарь доступности ---
	api.HandleFunc("/availabilities", listAvailabilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availabilities", createAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availabilities/{slotId}", updateAvailability.Handle).Methods(http.MethodPut)
	api.HandleFunc("/availabilities/{slotId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Обратная связь ---
	api.HandleFunc("/contact", submitContact.Handle).Methods(http.MethodPost)
	api.HandleFunc("/contact", listContacts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/contact/{messageId}", updateContact.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/contact/{messageId}", deleteContact.Handle).Methods(http.MethodDelete)

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

// runMigrations применяет goose-миграции при старте сервиса
func runMigrations(db *sql.DB, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
