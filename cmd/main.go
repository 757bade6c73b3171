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

	adminLoginHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/admin_login"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createClientHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_client"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	deleteAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_appointment"
	deleteServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_service"
	findClientHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/find_client"
	getAllServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_all_services"
	getAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointments"
	getAppointmentsByDateHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointments_by_date"
	getAvailableTimesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_times"
	getServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_services"
	getStatsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_stats"
	updateAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment"
	updateClientHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_client"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	catalogCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/catalog"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/client"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	authService "github.com/m04kA/SMC-SalonService/internal/service/auth"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-SalonService/internal/service/clients"
	statsService "github.com/m04kA/SMC-SalonService/internal/service/stats"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonService/pkg/types"
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml")

	// Строим дневную сетку слотов из конфигурации
	template, err := buildSlotTemplate(cfg.Schedule)
	if err != nil {
		log.Fatal("Failed to build slot template: %v", err)
	}
	log.Info("Slot template built: %d slots per day", len(template))

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
		serviceRepository     *serviceRepo.Repository
		clientRepository      *clientRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		userRepository        *userRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		serviceRepository = serviceRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш каталога услуг
	cache := catalogCache.New(time.Duration(cfg.ServicesCache.TTLSeconds) * time.Second)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(serviceRepository, cache, log)
	clientsSvc := clientsService.NewService(clientRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	statsSvc := statsService.NewService(appointmentRepository, log)
	authSvc := authService.NewService(
		userRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		log,
	)

	// Создаем дефолтного администратора при первом старте
	if cfg.Auth.BootstrapAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authSvc.EnsureDefaultAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			cancel()
			log.Fatal("Failed to bootstrap default admin: %v", err)
		}
		cancel()
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		appointmentRepository,
		template,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		clientsSvc,
		txMgr,
		template,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getAllServices := getAllServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	createClient := createClientHandler.NewHandler(clientsSvc, log)
	findClient := findClientHandler.NewHandler(clientsSvc, log)
	updateClient := updateClientHandler.NewHandler(clientsSvc, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointmentsByDate := getAppointmentsByDateHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	getStats := getStatsHandler.NewHandler(statsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог активных услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Свободное время для записи
	api.HandleFunc("/appointments/available-times/{date}/{serviceId}",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// Клиент из формы бронирования: повторный телефон возвращает существующего
	api.HandleFunc("/clients", createClient.Handle).Methods(http.MethodPost)
	api.HandleFunc("/clients/{phone}", findClient.Handle).Methods(http.MethodGet)

	// Создание записи (публичная форма бронирования)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Вход администратора
	api.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT администратора)
	// ============================================================

	protected := api.PathPrefix("/admin").Subrouter()
	protected.Use(middleware.AdminAuth(authSvc, log))

	// --- Услуги ---
	protected.HandleFunc("/services", getAllServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Клиенты ---
	protected.HandleFunc("/clients/{clientId}", updateClient.Handle).Methods(http.MethodPatch)

	// --- Записи ---
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/date/{date}", getAppointmentsByDate.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Статистика ---
	protected.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

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

// buildSlotTemplate строит дневную сетку слотов из двух рабочих блоков
func buildSlotTemplate(schedule config.ScheduleConfig) ([]types.TimeString, error) {
	morningOpen, err := types.NewTimeStringFromString(schedule.MorningOpen)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.morning_open: %w", err)
	}
	morningClose, err := types.NewTimeStringFromString(schedule.MorningClose)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.morning_close: %w", err)
	}
	afternoonOpen, err := types.NewTimeStringFromString(schedule.AfternoonOpen)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.afternoon_open: %w", err)
	}
	afternoonClose, err := types.NewTimeStringFromString(schedule.AfternoonClose)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.afternoon_close: %w", err)
	}

	return getAvailableSlotsUC.GenerateTemplate([]getAvailableSlotsUC.Window{
		{Open: morningOpen, Close: morningClose},
		{Open: afternoonOpen, Close: afternoonClose},
	}, schedule.SlotMinutes)
}
