package container

import (
	"context"
	"fmt"

	"datasight/adapters/loader"
	"datasight/adapters/memory"
	"datasight/adapters/postgres"
	"datasight/app"
	"datasight/internal"
	"datasight/internal/config"
	"datasight/internal/dataset"
	"datasight/internal/migration"
	"datasight/internal/profiling"
	"datasight/ports"
	"datasight/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Loader       *loader.Loader
	FileStorage  *dataset.LocalFileStorage
	ProfileStore ports.ProfileStore

	// Services
	Analysis *app.AnalysisService
	HTTP     *ui.App
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NopLogger()
	}

	return &Container{
		Config: cfg,
		Logger: logger,
	}, nil
}

// Init builds every component. When a database is configured the schema is
// migrated and profiles are persisted there; otherwise they live in memory.
func (c *Container) Init(ctx context.Context) error {
	if err := c.initStore(ctx); err != nil {
		return err
	}

	c.Loader = loader.New(loader.Config{
		Coercion: loader.DefaultCoercionConfig(),
		MaxBytes: c.Config.Upload.MaxBytes(),
	}, c.Logger.With("component", "loader"))

	c.FileStorage = dataset.NewLocalFileStorage(&dataset.StorageConfig{
		BasePath:    c.Config.Upload.Dir,
		MaxFileSize: c.Config.Upload.MaxBytes(),
	})

	c.Analysis = app.NewAnalysisService(
		c.Loader,
		c.FileStorage,
		c.ProfileStore,
		profiling.NewDataProfiler(),
		c.Config.Upload.AllowedExtensions,
		c.Logger.With("component", "analysis"),
	)

	c.HTTP = ui.NewApp(c.Analysis, ui.Config{
		StaticDir:      c.Config.Server.StaticDir,
		AllowedOrigins: c.Config.Server.CORSAllowedOrigins,
		MaxUploadBytes: c.Config.Upload.MaxBytes(),
	}, c.Logger.With("component", "http"))

	c.Logger.Info("Container initialized (store: %T, uploads: %s)", c.ProfileStore, c.Config.Upload.Dir)
	return nil
}

// initStore selects the profile store
func (c *Container) initStore(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		c.ProfileStore = memory.NewProfileStore()
		return nil
	}

	db, err := OpenDatabase(ctx, c.Config.Database, c.Logger)
	if err != nil {
		return err
	}
	c.DB = db
	c.ProfileStore = postgres.NewProfileRepository(db)
	return nil
}

// OpenDatabase connects to DATABASE_URL and applies the schema
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *internal.Logger) (*sqlx.DB, error) {
	db, err := postgres.Connect(ctx, cfg.URL, postgres.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := migration.NewRunner(logger).Run(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return db, nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
