package cmd

import (
	"fmt"

	"bucket-manager/core/config"
	"bucket-manager/core/database"
	"bucket-manager/core/logger"
	"bucket-manager/core/storage"
	"bucket-manager/feature/audit"
	"bucket-manager/feature/objects"

	"go.uber.org/zap"
)

// application bundles what every command needs. It is built once per process
// and passed down explicitly.
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	objects *objects.Service
	// audit is nil when the journal is disabled or unreachable.
	audit *audit.Service
}

func bootstrap() (*application, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if bucketFlag != "" {
		cfg.Storage.Bucket = bucketFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	app := &application{
		cfg:     cfg,
		logger:  logg,
		objects: objects.NewService(client, cfg.Storage.Bucket, logg),
	}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, audit journal disabled", zap.Error(err))
		} else {
			journal := audit.NewService(db, cfg.Storage.Bucket, logg)
			if err := journal.Migrate(); err != nil {
				logg.Warn("Audit journal unavailable", zap.Error(err))
			} else {
				app.objects.SetRecorder(journal)
				app.audit = journal
				logg.Debug("Audit journal enabled", zap.String("driver", cfg.Database.Driver))
			}
		}
	}

	return app, nil
}

func (a *application) close() {
	_ = a.logger.Sync()
}
