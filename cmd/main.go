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

	bookAppointmentHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/book_appointment"
	cancelSlotsHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/cancel_slots"
	cancelSlotsByDateHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/cancel_slots_by_date"
	convertDeliveryModeHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/convert_delivery_mode"
	deleteAppointmentHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/delete_appointment"
	generateSlotsHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/generate_slots"
	getAppointmentHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/get_appointment"
	getDoctorSlotsHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/get_doctor_slots"
	getPatientAppointmentsHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/get_patient_appointments"
	getSpecialtySlotsHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/get_specialty_slots"
	shiftSlotHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/shift_slot"
	updateAppointmentHandler "github.com/polyakovn/HMS-SchedulingService/internal/api/handlers/update_appointment"
	"github.com/polyakovn/HMS-SchedulingService/internal/api/middleware"
	"github.com/polyakovn/HMS-SchedulingService/internal/config"
	appointmentRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/polyakovn/HMS-SchedulingService/internal/infra/storage/slot"
	partyServiceClient "github.com/polyakovn/HMS-SchedulingService/internal/integrations/partyservice"
	appointmentsService "github.com/polyakovn/HMS-SchedulingService/internal/service/appointments"
	slotsService "github.com/polyakovn/HMS-SchedulingService/internal/service/slots"
	bookAppointmentUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/book_appointment"
	cancelSlotsUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots"
	cancelSlotsByDateUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/cancel_slots_by_date"
	convertDeliveryModeUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/convert_delivery_mode"
	deleteAppointmentUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/delete_appointment"
	generateSlotsUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/generate_slots"
	shiftSlotUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/shift_slot"
	updateAppointmentUC "github.com/polyakovn/HMS-SchedulingService/internal/usecase/update_appointment"
	"github.com/polyakovn/HMS-SchedulingService/pkg/dbmetrics"
	"github.com/polyakovn/HMS-SchedulingService/pkg/logger"
	"github.com/polyakovn/HMS-SchedulingService/pkg/metrics"
	"github.com/polyakovn/HMS-SchedulingService/pkg/simpletxmanager"
	"github.com/polyakovn/HMS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting HMS-SchedulingService...")
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

	// Инициализируем клиента PartyService
	partyClient := partyServiceClient.NewClient(
		cfg.PartyService.URL,
		time.Duration(cfg.PartyService.Timeout)*time.Second,
		log,
	)
	log.Info("PartyService client initialized (url=%s, timeout=%ds)",
		cfg.PartyService.URL, cfg.PartyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository        *slotRepo.Repository
		appointmentRepository *appointmentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(
		slotRepository,
		partyClient,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		slotRepository,
		partyClient,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		partyClient,
		txMgr,
		log,
	)
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		partyClient,
		txMgr,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		partyClient,
		txMgr,
		log,
	)
	deleteAppointmentUseCase := deleteAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		txMgr,
		log,
	)
	shiftSlotUseCase := shiftSlotUC.NewUseCase(
		slotRepository,
		txMgr,
		log,
	)
	cancelSlotsUseCase := cancelSlotsUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		txMgr,
		log,
	)
	cancelSlotsByDateUseCase := cancelSlotsByDateUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		txMgr,
		log,
	)
	convertDeliveryModeUseCase := convertDeliveryModeUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getDoctorSlots := getDoctorSlotsHandler.NewHandler(slotsSvc, log)
	getSpecialtySlots := getSpecialtySlotsHandler.NewHandler(slotsSvc, log)
	shiftSlot := shiftSlotHandler.NewHandler(shiftSlotUseCase, log)
	cancelSlots := cancelSlotsHandler.NewHandler(cancelSlotsUseCase, log)
	cancelSlotsByDate := cancelSlotsByDateHandler.NewHandler(cancelSlotsByDateUseCase, log)
	convertDeliveryMode := convertDeliveryModeHandler.NewHandler(convertDeliveryModeUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(deleteAppointmentUseCase, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/slots", getDoctorSlots.Handle).Methods(http.MethodGet)

	// Свободные слоты по специальности
	api.HandleFunc("/specialties/{specialtyId}/slots", getSpecialtySlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление слотами (для регистратуры и врачей) ---
	// Пакетная генерация слотов врача
	protected.HandleFunc("/doctors/{doctorId}/slots", generateSlots.Handle).Methods(http.MethodPost)

	// Перенос слота на новые дату и время
	protected.HandleFunc("/slots/{slotId}/shift", shiftSlot.Handle).Methods(http.MethodPatch)

	// Смена типа приёма слота
	protected.HandleFunc("/slots/{slotId}/delivery-mode", convertDeliveryMode.Handle).Methods(http.MethodPatch)

	// Отмена слотов по списку ID
	protected.HandleFunc("/slots/cancel", cancelSlots.Handle).Methods(http.MethodPost)

	// Отмена всех слотов на дату
	protected.HandleFunc("/slots/cancel-by-date", cancelSlotsByDate.Handle).Methods(http.MethodPost)

	// --- Приёмы ---
	// Бронирование приёма
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Изменение приёма
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Удаление (отмена) приёма
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// История приёмов пациента
	protected.HandleFunc("/patients/me/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

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
