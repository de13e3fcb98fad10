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

	createBookingHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/create_booking"
	createCartHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/create_reservation_cart"
	getAvailabilityHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/get_booking"
	getInstrumentHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/get_instrument"
	getRequestHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/get_request"
	getUserRequestsHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/get_user_requests"
	listBookingsHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/list_bookings"
	listInstrumentsHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/list_instruments"
	transitionBookingHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/transition_booking"
	transitionRequestHandler "github.com/ensembleops/ERS-ReservationService/internal/api/handlers/transition_request"
	"github.com/ensembleops/ERS-ReservationService/internal/api/middleware"
	"github.com/ensembleops/ERS-ReservationService/internal/config"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	bookingRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/booking"
	instrumentRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/instrument"
	requestRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/request"
	invoicingClient "github.com/ensembleops/ERS-ReservationService/internal/integrations/invoicing"
	notifierClient "github.com/ensembleops/ERS-ReservationService/internal/integrations/notifier"
	pricingClient "github.com/ensembleops/ERS-ReservationService/internal/integrations/pricing"
	bookingsService "github.com/ensembleops/ERS-ReservationService/internal/service/bookings"
	catalogService "github.com/ensembleops/ERS-ReservationService/internal/service/catalog"
	requestsService "github.com/ensembleops/ERS-ReservationService/internal/service/requests"
	createBookingUC "github.com/ensembleops/ERS-ReservationService/internal/usecase/create_booking"
	createCartUC "github.com/ensembleops/ERS-ReservationService/internal/usecase/create_reservation_cart"
	getAvailabilityUC "github.com/ensembleops/ERS-ReservationService/internal/usecase/get_availability"
	transitionBookingUC "github.com/ensembleops/ERS-ReservationService/internal/usecase/transition_booking"
	transitionRequestUC "github.com/ensembleops/ERS-ReservationService/internal/usecase/transition_request"
	"github.com/ensembleops/ERS-ReservationService/pkg/dbmetrics"
	"github.com/ensembleops/ERS-ReservationService/pkg/logger"
	"github.com/ensembleops/ERS-ReservationService/pkg/metrics"
	"github.com/ensembleops/ERS-ReservationService/pkg/simpletxmanager"
	"github.com/ensembleops/ERS-ReservationService/pkg/txmanager"
)

// TxManager общий интерфейс менеджеров транзакций (с метриками и без)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting ERS-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	pricing := pricingClient.NewClient(
		cfg.Pricing.URL,
		time.Duration(cfg.Pricing.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	invoicing := invoicingClient.NewClient(
		cfg.Invoicing.URL,
		time.Duration(cfg.Invoicing.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Pricing=%s, Notifier=%s, Invoicing=%s)",
		cfg.Pricing.URL, cfg.Notifier.URL, cfg.Invoicing.URL)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		instrumentRepository *instrumentRepo.Repository
		requestRepository    *requestRepo.Repository
		bookingRepository    *bookingRepo.Repository
		txMgr                TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		instrumentRepository = instrumentRepo.NewRepository(wrappedDB)
		requestRepository = requestRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		instrumentRepository = instrumentRepo.NewRepository(db)
		requestRepository = requestRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем шину доменных событий и ретранслятор уведомлений
	eventBus := events.NewBus(cfg.Events.Buffer)
	relay := events.NewRelay(eventBus, notifier, log)

	relayCtx, relayCancel := context.WithCancel(context.Background())
	go relay.Run(relayCtx)
	log.Info("Domain event bus started (buffer=%d)", cfg.Events.Buffer)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(instrumentRepository, log)
	requestsSvc := requestsService.NewService(requestRepository, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		instrumentRepository,
		requestRepository,
		txMgr,
		log,
	)
	createCartUseCase := createCartUC.NewUseCase(
		instrumentRepository,
		requestRepository,
		txMgr,
		pricing,
		eventBus,
		log,
	)
	transitionRequestUseCase := transitionRequestUC.NewUseCase(
		requestRepository,
		txMgr,
		eventBus,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		pricing,
		eventBus,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		invoicing,
		eventBus,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listInstruments := listInstrumentsHandler.NewHandler(catalogSvc, log)
	getInstrument := getInstrumentHandler.NewHandler(catalogSvc, log)
	createCart := createCartHandler.NewHandler(createCartUseCase, log)
	getRequest := getRequestHandler.NewHandler(requestsSvc, log)
	getUserRequests := getUserRequestsHandler.NewHandler(requestsSvc, log)
	transitionRequest := transitionRequestHandler.NewHandler(transitionRequestUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог инструментов
	api.HandleFunc("/instruments", listInstruments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/instruments/{instrumentId}", getInstrument.Handle).Methods(http.MethodGet)

	// Доступное количество инструмента на диапазон дат
	api.HandleFunc("/instruments/{instrumentId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки на аренду/выдачу инструментов ---
	// Создание корзины заявок (всё или ничего)
	protected.HandleFunc("/reservation-requests", createCart.Handle).Methods(http.MethodPost)

	// Заявки пользователя
	protected.HandleFunc("/reservation-requests", getUserRequests.Handle).Methods(http.MethodGet)

	// Заявка по ID
	protected.HandleFunc("/reservation-requests/{requestId}", getRequest.Handle).Methods(http.MethodGet)

	// Переходы по машине состояний заявки
	protected.HandleFunc("/reservation-requests/{requestId}/approve", transitionRequest.HandleApprove).Methods(http.MethodPost)
	protected.HandleFunc("/reservation-requests/{requestId}/reject", transitionRequest.HandleReject).Methods(http.MethodPost)
	protected.HandleFunc("/reservation-requests/{requestId}/pay", transitionRequest.HandlePay).Methods(http.MethodPost)
	protected.HandleFunc("/reservation-requests/{requestId}/return", transitionRequest.HandleReturn).Methods(http.MethodPost)

	// --- Бронирования выступлений ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Расписание бронирований
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Бронирование по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Одобрение/отклонение бронирования
	protected.HandleFunc("/bookings/{bookingId}/approve", transitionBooking.HandleApprove).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reject", transitionBooking.HandleReject).Methods(http.MethodPost)

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

	// Останавливаем шину событий и ретранслятор
	eventBus.Close()
	relayCancel()

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
