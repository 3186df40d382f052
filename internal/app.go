package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"listing-service/internal/adapters/backendapi"
	cache_adapter "listing-service/internal/adapters/cache"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/realtime"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluentlogger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	apiServer    *rest.Server
	queryCache   *cache_adapter.QueryCache
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	invalidationBridge port.EventListenerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	backendClient := backendapi.NewClient(appConfig.Backend.URL, appConfig.Backend.ServiceKey, baseLogger)
	appLogger.Info("Backend platform client initialized.", port.Fields{"backend_url": appConfig.Backend.URL})

	queryCache := cache_adapter.NewQueryCache(appConfig.Cache.SnapshotPath, appConfig.Cache.Retention, baseLogger)
	appLogger.Info("Query cache initialized.", port.Fields{"snapshot_path": appConfig.Cache.SnapshotPath})

	// --- 4. USE CASES (ядро бизнес-логики) ---
	getPropertiesUseCase := usecase.NewGetPropertiesUseCase(backendClient, queryCache)
	getFeaturedUseCase := usecase.NewGetFeaturedPropertiesUseCase(backendClient, queryCache)
	getByCategoryUseCase := usecase.NewGetPropertiesByCategoryUseCase(backendClient, queryCache)
	getPropertyByIDUseCase := usecase.NewGetPropertyByIDUseCase(backendClient, queryCache)
	searchPropertiesUseCase := usecase.NewSearchPropertiesUseCase(backendClient)

	getCompanyProfileUseCase := usecase.NewGetCompanyProfileUseCase(backendClient, queryCache)
	updateCompanyProfileUseCase := usecase.NewUpdateCompanyProfileUseCase(backendClient, backendClient, queryCache)
	getTeamMembersUseCase := usecase.NewGetTeamMembersUseCase(backendClient, queryCache)
	saveTeamMemberUseCase := usecase.NewSaveTeamMemberUseCase(backendClient, backendClient, queryCache)
	reorderTeamMembersUseCase := usecase.NewReorderTeamMembersUseCase(backendClient, queryCache)

	notifierUseCase := usecase.NewSendLeadNotificationUseCase(backendClient, backendClient, backendClient, appConfig.Notifications.AdminEmail)
	autoResponderUseCase := usecase.NewSendLeadAutoResponseUseCase(backendClient, backendClient)
	createLeadUseCase := usecase.NewCreateLeadUseCase(backendClient, notifierUseCase, autoResponderUseCase)
	getLeadsUseCase := usecase.NewGetLeadsUseCase(backendClient)
	updateLeadUseCase := usecase.NewUpdateLeadUseCase(backendClient)

	savePropertyUseCase := usecase.NewSavePropertyUseCase(backendClient, queryCache)
	deletePropertyUseCase := usecase.NewDeletePropertyUseCase(backendClient, backendClient, queryCache)
	uploadImageUseCase := usecase.NewUploadPropertyImageUseCase(backendClient, backendClient, queryCache)
	setPrimaryImageUseCase := usecase.NewSetPrimaryImageUseCase(backendClient, queryCache)
	deleteImageUseCase := usecase.NewDeletePropertyImageUseCase(backendClient, backendClient, queryCache)

	appLogger.Info("All use cases initialized.", nil)

	// --- 5. ВХОДЯЩИЕ АДАПТЕРЫ ---
	invalidationBridge := realtime.NewInvalidationBridge(backendClient, queryCache, baseLogger)
	appLogger.Info("Realtime invalidation bridge initialized.", nil)

	catalogHandlers := rest.NewCatalogHandler(
		getPropertiesUseCase, getFeaturedUseCase, getByCategoryUseCase,
		getPropertyByIDUseCase, searchPropertiesUseCase,
		getCompanyProfileUseCase, getTeamMembersUseCase,
	)
	leadHandlers := rest.NewLeadHandler(createLeadUseCase, getLeadsUseCase, updateLeadUseCase)
	adminHandlers := rest.NewAdminHandler(
		savePropertyUseCase, deletePropertyUseCase,
		uploadImageUseCase, setPrimaryImageUseCase, deleteImageUseCase,
		updateCompanyProfileUseCase, saveTeamMemberUseCase, reorderTeamMembersUseCase,
	)

	apiServer := rest.NewServer(appConfig.Rest.PORT, catalogHandlers, leadHandlers, adminHandlers, backendClient, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 6. Собираем приложение ---
	application := &App{
		config:             appConfig,
		apiServer:          apiServer,
		queryCache:         queryCache,
		invalidationBridge: invalidationBridge,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	// Используем WaitGroup для ожидания завершения всех фоновых задач
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.invalidationBridge != nil {
			if err := a.invalidationBridge.Close(); err != nil {
				a.logger.Error("Error closing invalidation bridge", err, nil)
			}
		}

		if a.queryCache != nil {
			if err := a.queryCache.Close(); err != nil {
				a.logger.Error("Error writing final cache snapshot", err, nil)
			} else {
				a.logger.Info("Cache snapshot written.", nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	// Функция-хелпер для запуска слушателей
	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	wg.Add(1)
	go startListener("Realtime Invalidation Bridge", a.invalidationBridge)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
