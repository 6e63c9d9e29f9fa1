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

	authCheckHandler "github.com/barberbook/booking-service/internal/api/handlers/auth_check"
	bookHandler "github.com/barberbook/booking-service/internal/api/handlers/book"
	deleteAppointmentHandler "github.com/barberbook/booking-service/internal/api/handlers/delete_appointment"
	getSlotsHandler "github.com/barberbook/booking-service/internal/api/handlers/get_slots"
	listAppointmentsHandler "github.com/barberbook/booking-service/internal/api/handlers/list_appointments"
	loginHandler "github.com/barberbook/booking-service/internal/api/handlers/login"
	logoutHandler "github.com/barberbook/booking-service/internal/api/handlers/logout"
	updateHandler "github.com/barberbook/booking-service/internal/api/handlers/update"
	updateAppointmentHandler "github.com/barberbook/booking-service/internal/api/handlers/update_appointment"
	verifyCompleteHandler "github.com/barberbook/booking-service/internal/api/handlers/verify_complete"
	verifyStartHandler "github.com/barberbook/booking-service/internal/api/handlers/verify_start"
	"github.com/barberbook/booking-service/internal/api/middleware"
	"github.com/barberbook/booking-service/internal/config"
	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/internal/infra/cache"
	"github.com/barberbook/booking-service/internal/infra/events"
	"github.com/barberbook/booking-service/internal/infra/sms"
	appointmentRepo "github.com/barberbook/booking-service/internal/infra/storage/appointment"
	appointmentsService "github.com/barberbook/booking-service/internal/service/appointments"
	authService "github.com/barberbook/booking-service/internal/service/auth"
	verificationService "github.com/barberbook/booking-service/internal/service/verification"
	bookAppointmentUC "github.com/barberbook/booking-service/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/barberbook/booking-service/internal/usecase/get_available_slots"
	"github.com/barberbook/booking-service/pkg/dbmetrics"
	"github.com/barberbook/booking-service/pkg/logger"
	"github.com/barberbook/booking-service/pkg/metrics"
	"github.com/barberbook/booking-service/pkg/txmanager"
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

	log.Info("Starting BarberBook booking service...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс барбершопа: все расчеты "сегодня/прошлое" идут в нем
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	slotTemplate, err := cfg.Booking.SlotTemplate()
	if err != nil {
		log.Fatal("Failed to parse slot template: %v", err)
	}
	log.Info("Slot template loaded: %d slots, timezone=%s", len(slotTemplate), cfg.Booking.Timezone)

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

	// Подключаемся к Redis (кеш слотов + сессии верификации)
	redisClient := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	slotsCache := cache.NewSlotsCache(redisClient)

	// Публикация событий о записях (если включена)
	type EventPublisher interface {
		AppointmentCreated(ctx context.Context, appt *domain.Appointment)
		AppointmentStatusChanged(ctx context.Context, id int64, status domain.AppointmentStatus)
		AppointmentDeleted(ctx context.Context, id int64)
	}
	var eventPublisher EventPublisher = events.NoopPublisher{}

	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer kafkaPublisher.Close()
		eventPublisher = kafkaPublisher
		log.Info("Kafka event publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// SMS-отправитель для кодов верификации
	var smsSender sms.Sender = sms.NewLogSender(log)
	if cfg.Verification.SMSWebhookURL != "" {
		smsSender = sms.NewWebhookSender(cfg.Verification.SMSWebhookURL, cfg.Verification.SMSToken)
		log.Info("SMS webhook sender enabled")
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		apptRepository *appointmentRepo.Repository
		txManager      *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		txManager = txmanager.NewTransactionManager(wrappedDB)
	} else {
		apptRepository = appointmentRepo.NewRepository(db)
		txManager = txmanager.NewTransactionManager(txmanager.WrapDB(db))
	}

	// Инициализируем сервисы
	apptService := appointmentsService.NewService(
		apptRepository,
		eventPublisher,
		slotsCache,
		log,
	)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	adminCredentials := make([]authService.Credential, 0, len(cfg.Auth.Admins))
	for _, admin := range cfg.Auth.Admins {
		adminCredentials = append(adminCredentials, authService.Credential{
			Username:     admin.Username,
			PasswordHash: admin.PasswordHash,
		})
	}
	authSvc := authService.NewService(adminCredentials, sessionTTL, cfg.Server.IsProduction(), log)

	verificationSvc := verificationService.NewService(
		redisClient,
		smsSender,
		time.Duration(cfg.Verification.CodeTTLMinutes)*time.Minute,
		cfg.Verification.MaxAttempts,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		apptRepository,
		txManager,
		eventPublisher,
		slotsCache,
		slotTemplate,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		apptRepository,
		slotTemplate,
		location,
		cfg.Booking.SameDayBufferMin,
		log,
	)

	// Инициализируем handlers
	book := bookHandler.NewHandler(bookAppointmentUseCase, log)
	getSlots := getSlotsHandler.NewHandler(getAvailableSlotsUseCase, slotsCache, log)
	listAppointments := listAppointmentsHandler.NewHandler(apptService, log)
	updateAppointment := updateAppointmentHandler.NewHandler(apptService, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(apptService, log)
	update := updateHandler.NewHandler(apptService, log)
	login := loginHandler.NewHandler(authSvc, log)
	logout := logoutHandler.NewHandler(authSvc, log)
	authCheck := authCheckHandler.NewHandler(authSvc, log)
	verifyStart := verifyStartHandler.NewHandler(verificationSvc, log)
	verifyComplete := verifyCompleteHandler.NewHandler(verificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Rate limit на публичные эндпоинты, принимающие записи и коды
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limit = func(h http.HandlerFunc) http.Handler { return rateLimiter.Middleware(h) }
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание записи клиентом
	r.Handle("/book", limit(book.Handle)).Methods(http.MethodPost)

	// Доступные слоты на дату
	r.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// Верификация телефона
	r.Handle("/verify/start", limit(verifyStart.Handle)).Methods(http.MethodPost)
	r.HandleFunc("/verify/complete", verifyComplete.Handle).Methods(http.MethodPost)

	// Админская сессия
	r.Handle("/auth/login", limit(login.Handle)).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)
	r.HandleFunc("/auth/check", authCheck.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют сессионную cookie)
	// ============================================================

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// Список записей
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Удаление записи
	protected.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Частичное обновление и удаление (legacy-поверхность админки)
	protected.HandleFunc("/update", update.HandleUpdate).Methods(http.MethodPatch)
	protected.HandleFunc("/update", update.HandleDelete).Methods(http.MethodDelete)

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
