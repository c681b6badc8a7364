package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AlefSillva/projeto-empresa-db/internal/config"
	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/handler"
	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
	"github.com/AlefSillva/projeto-empresa-db/internal/repository"
	"github.com/AlefSillva/projeto-empresa-db/internal/service"
	"github.com/AlefSillva/projeto-empresa-db/internal/source"
)

type App struct {
	Echo    *echo.Echo
	DB      *sql.DB
	Dialect database.Dialect
	Config  *config.EnvConfig
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

// Setup loads the configuration, initializes logging and opens the store.
func (a *App) Setup(ctx context.Context) error {
	cfg, err := config.LoadEnvConfig()
	if err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	a.Config = cfg

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	dbConfig := database.Config{
		Driver:          cfg.DB_DRIVER,
		Path:            cfg.DB_PATH,
		DSN:             cfg.DB_DSN,
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}

	db, dialect, err := database.Open(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db
	a.Dialect = dialect
	logger.InfoLog(ctx, "Database connection established (%s)", dialect)

	return nil
}

// Manifest returns the source manifest named by SOURCES_FILE, or the default
// "<table>.csv" layout under DATA_DIR.
func (a *App) Manifest() (*source.Manifest, error) {
	if a.Config.SOURCES_FILE != "" {
		return source.LoadManifest(a.Config.SOURCES_FILE)
	}
	return source.DefaultManifest(a.Config.DATA_DIR, database.TableNames()), nil
}

// LoadData rebuilds the schema and bulk loads every source. It returns the
// number of rows inserted per table.
func (a *App) LoadData(ctx context.Context) (map[string]int64, error) {
	manifest, err := a.Manifest()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sources: %w", err)
	}

	sets, err := manifest.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}

	if err := database.NewSchema(a.DB, a.Dialect).Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset schema: %w", err)
	}

	counts, err := database.NewLoader(a.DB, a.Dialect).LoadAll(ctx, sets)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	return counts, nil
}

// Initialize prepares the app for serving: the store is fully rebuilt before
// any route is registered.
func (a *App) Initialize(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}

	if _, err := a.LoadData(ctx); err != nil {
		return err
	}

	// Initialize dependencies
	reportRepo := repository.NewReportRepository(a.Dialect)
	reportSvc := service.NewReportService(database.NewConnManager(a.DB), reportRepo, a.Config.COMPLETED_STATUS)
	reportHandler := handler.NewReportHandler(reportSvc)

	a.RegisterMiddlewares()
	reportHandler.RegisterRoutes(a.Echo)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(logger.RequestLogger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

// Run serves HTTP on APP_PORT until the server stops.
func (a *App) Run() error {
	return a.Echo.Start(":" + a.Config.APP_PORT)
}

// Close releases the store.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
