package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-vaccine-registration/config"
	deliveryHttp "go-vaccine-registration/internal/delivery/http"
	"go-vaccine-registration/internal/delivery/http/handler"
	"go-vaccine-registration/internal/delivery/http/middleware"
	"go-vaccine-registration/internal/domain/entity"
	domainRepo "go-vaccine-registration/internal/domain/repository"
	"go-vaccine-registration/internal/infrastructure/cache"
	"go-vaccine-registration/internal/infrastructure/catalog"
	"go-vaccine-registration/internal/infrastructure/database"
	"go-vaccine-registration/internal/repository"
	"go-vaccine-registration/internal/service"
	"go-vaccine-registration/internal/usecase"
	"go-vaccine-registration/pkg/clock"
	"go-vaccine-registration/pkg/jwt"
	"go-vaccine-registration/pkg/validator"

	"github.com/natefinch/lumberjack"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Locker      *service.WizardLocker
	Server      *http.Server
	logSink     io.Closer
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	sink, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	app.logSink = sink
	logrus.Info("Configuration loaded successfully")

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	clk := clock.System(loc)

	// Option lists must be usable before the first request
	options, err := catalog.Load(cfg.Form.OptionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load option catalog: %w", err)
	}
	logrus.Infof("Option catalog loaded: %d priority groups, %d sessions", len(options.GroupPriorities), len(options.Sessions))

	// Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
	}

	// Initialize database
	if cfg.DB.Enabled {
		if err := database.RunMigrations(cfg.DB.URL(), logrus.StandardLogger()); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Timezone)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
	}

	// Initialize all layers
	app.Locker = service.NewWizardLocker(logrus.StandardLogger())
	app.Server = initializeServer(cfg, clk, options, app)

	return app, nil
}

// setupLogger configures the logrus logger.  The returned closer is nil
// unless LOG_FILE is set.
func setupLogger(cfg config.LogConfig) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(level)

	if cfg.File == "" {
		logrus.SetOutput(os.Stdout)
		return nil, nil
	}

	fileSink := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, fileSink))
	return fileSink, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, clk clock.Clock, options entity.OptionCatalog, app *App) *http.Server {
	log := logrus.StandardLogger()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT, clk)

	// Initialize validator
	customValidator := validator.NewValidator(clk)

	// Initialize repositories
	var wizardRepo domainRepo.WizardRepository
	if app.RedisClient != nil {
		wizardRepo = repository.NewWizardRedisRepository(app.RedisClient, cfg.Wizard.TTL)
	} else {
		wizardRepo = repository.NewWizardMemoryRepository(cfg.Wizard.TTL, clk)
	}

	// Initialize services
	auditService := service.NewNoopAuditService()
	if app.DB != nil {
		auditService = service.NewAuditService(app.DB, log, repository.NewAuditLogRepository())
	}
	schema := service.NewRegistrationSchema(clk, options, cfg.Form.StrictOptions)

	// Initialize usecases
	registrationUsecase := usecase.NewRegistrationWizardUsecase(log, clk, wizardRepo, schema, app.Locker, auditService, jwtService)

	// Initialize handlers
	registrationHandler := handler.NewRegistrationHandler(registrationUsecase, customValidator)

	// Initialize middleware
	wizardMiddleware := middleware.NewWizardMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(registrationHandler, wizardMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s, draft store: %s, audit: %v", app.Config.App.Env, app.Config.Wizard.Store, app.Config.Audit.Enabled)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close releases everything New acquired.  Safe on a partially built App.
func (app *App) Close() {
	if app.Locker != nil {
		app.Locker.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.logSink != nil {
		app.logSink.Close()
	}
}
