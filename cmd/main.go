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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-SlotsService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SlotsService/internal/api/handlers/create_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SlotsService/internal/api/handlers/get_available_slots"
	getWeeklyAvailabilityHandler "github.com/m04kA/SMC-SlotsService/internal/api/handlers/get_weekly_availability"
	updateWeeklyAvailabilityHandler "github.com/m04kA/SMC-SlotsService/internal/api/handlers/update_weekly_availability"
	"github.com/m04kA/SMC-SlotsService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotsService/internal/config"
	servicesCache "github.com/m04kA/SMC-SlotsService/internal/infra/cache/services"
	appointmentsRepo "github.com/m04kA/SMC-SlotsService/internal/infra/storage/appointments"
	availabilityRepo "github.com/m04kA/SMC-SlotsService/internal/infra/storage/availability"
	servicesRepo "github.com/m04kA/SMC-SlotsService/internal/infra/storage/services"
	appointmentsService "github.com/m04kA/SMC-SlotsService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-SlotsService/internal/service/availability"
	createAppointmentUC "github.com/m04kA/SMC-SlotsService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SlotsService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SlotsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotsService/pkg/logger"
	"github.com/m04kA/SMC-SlotsService/pkg/metrics"
	"github.com/m04kA/SMC-SlotsService/pkg/txmanager"
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

	log.Info("Starting SMC-SlotsService...")

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	servicesRepository := servicesRepo.NewRepository(wrappedDB)
	appointmentsRepository := appointmentsRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кеш длительностей услуг используется только расчетом слотов.
	// Создание записи читает услуги из БД внутри своей транзакции
	var slotServiceSource getAvailableSlotsUC.ServiceRepository = servicesRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, cache will fall back to database: %v", cfg.Redis.Addr, err)
		}
		cancel()

		slotServiceSource = servicesCache.NewCache(
			redisClient,
			servicesRepository,
			time.Duration(cfg.Redis.TTL)*time.Second,
			log,
		)
		log.Info("Service duration cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentsRepository, txMgr, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)

	// Use cases
	var slotMetrics getAvailableSlotsUC.MetricsRecorder
	if metricsCollector != nil {
		slotMetrics = metricsCollector
	}
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		slotServiceSource,
		appointmentsRepository,
		slotMetrics,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		availabilityRepository,
		servicesRepository,
		appointmentsRepository,
		txMgr,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getWeeklyAvailability := getWeeklyAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateWeeklyAvailability := updateWeeklyAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Роутер
	r := mux.NewRouter()

	var httpMetrics middleware.MetricsRecorder
	if cfg.Metrics.Enabled {
		httpMetrics = metricsCollector
	}
	middleware.Register(r, httpMetrics, log)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", middleware.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", middleware.Readiness(wrappedDB, log)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Расчет доступных слотов
	api.HandleFunc("/timeslots", getAvailableSlots.Handle).Methods(http.MethodPost)
	api.HandleFunc("/timeslots", getAvailableSlots.HandleQuery).Methods(http.MethodGet)

	// Записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Недельное расписание
	api.HandleFunc("/availability", getWeeklyAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{dayOfWeek}", updateWeeklyAvailability.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
