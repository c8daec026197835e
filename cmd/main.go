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

	createBlockHandler "github.com/agendame/AGD-AvailabilityService/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/agendame/AGD-AvailabilityService/internal/api/handlers/delete_block"
	getDayAvailabilityHandler "github.com/agendame/AGD-AvailabilityService/internal/api/handlers/get_day_availability"
	getScheduleHandler "github.com/agendame/AGD-AvailabilityService/internal/api/handlers/get_schedule"
	listBlocksHandler "github.com/agendame/AGD-AvailabilityService/internal/api/handlers/list_blocks"
	updateScheduleHandler "github.com/agendame/AGD-AvailabilityService/internal/api/handlers/update_schedule"
	"github.com/agendame/AGD-AvailabilityService/internal/api/middleware"
	"github.com/agendame/AGD-AvailabilityService/internal/config"
	"github.com/agendame/AGD-AvailabilityService/internal/infra/notify"
	appointmentRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/appointment"
	blockRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/block"
	scheduleRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/schedule"
	directoryServiceClient "github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	blocksService "github.com/agendame/AGD-AvailabilityService/internal/service/blocks"
	scheduleService "github.com/agendame/AGD-AvailabilityService/internal/service/schedule"
	getDayAvailabilityUC "github.com/agendame/AGD-AvailabilityService/internal/usecase/get_day_availability"
	"github.com/agendame/AGD-AvailabilityService/pkg/dbmetrics"
	"github.com/agendame/AGD-AvailabilityService/pkg/logger"
	"github.com/agendame/AGD-AvailabilityService/pkg/metrics"
	"github.com/agendame/AGD-AvailabilityService/pkg/simpletxmanager"
	"github.com/agendame/AGD-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting AGD-AvailabilityService...")
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

	// Инициализируем клиента DirectoryService
	directoryClient := directoryServiceClient.NewClient(
		cfg.Directory.BaseURL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (DirectoryService=%s timeout=%ds)",
		cfg.Directory.BaseURL, cfg.Directory.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository    *scheduleRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		blockRepository       *blockRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисе расписаний)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		directoryClient,
		txMgr,
		log,
	)
	blocksSvc := blocksService.NewService(
		blockRepository,
		directoryClient,
		log,
	)

	// Инициализируем use case доступности.
	// metricsCollector может быть nil - use case это учитывает.
	var slotsMetrics getDayAvailabilityUC.SlotsMetrics
	if metricsCollector != nil {
		slotsMetrics = metricsCollector
	}
	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		blockRepository,
		directoryClient,
		slotsMetrics,
		log,
	)

	// Инициализируем handlers
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	listBlocks := listBlocksHandler.NewHandler(blocksSvc, log)
	createBlock := createBlockHandler.NewHandler(blocksSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blocksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Дневная доступность мастера
	api.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability",
		getDayAvailability.Handle).Methods(http.MethodGet)

	// Недельное расписание бизнеса
	api.HandleFunc("/businesses/{businessId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Административные блоки бизнеса на дату
	api.HandleFunc("/businesses/{businessId}/blocks",
		listBlocks.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Обновление недельного расписания (для менеджеров)
	protected.HandleFunc("/businesses/{businessId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Создание и удаление блоков (для менеджеров)
	protected.HandleFunc("/businesses/{businessId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// Подписка на изменения расписаний через LISTEN/NOTIFY (если включена)
	notifyCtx, cancelNotify := context.WithCancel(context.Background())
	defer cancelNotify()

	if cfg.Notify.Enabled {
		changeListener := notify.NewListener(
			cfg.Database.DSN(),
			cfg.Notify.Channel,
			time.Duration(cfg.Notify.DebounceMS)*time.Millisecond,
			func(ctx context.Context, payloads []string) {
				if metricsCollector != nil {
					metricsCollector.ObserveScheduleChanges(len(payloads))
				}
				log.Info("Schedule changes observed: %d notifications coalesced", len(payloads))
			},
			log,
		)
		go func() {
			if err := changeListener.Run(notifyCtx); err != nil && err != context.Canceled {
				log.Error("Change listener stopped: %v", err)
			}
		}()
		log.Info("Change feed listener started (channel=%s, debounce=%dms)",
			cfg.Notify.Channel, cfg.Notify.DebounceMS)
	}

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

	// Останавливаем слушателя изменений
	cancelNotify()

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
