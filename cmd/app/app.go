package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artesania/feria-api/internal/api"
	"github.com/artesania/feria-api/internal/config"
	"github.com/artesania/feria-api/internal/db"
	"github.com/artesania/feria-api/internal/logger"
	"github.com/artesania/feria-api/internal/repository"
	"github.com/artesania/feria-api/internal/repository/filestore"
	"github.com/artesania/feria-api/internal/repository/gormstore"
	"github.com/artesania/feria-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	config.Watch(conf, func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))
	})

	store, err := openStore(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize store -> %w", err)
	}

	if err = service.NewAuthService(store).EnsureAdmin(context.Background(), conf.Admin.Email, conf.Admin.Password); err != nil {
		return fmt.Errorf("failed to ensure admin account -> %w", err)
	}

	s := api.NewServer(conf, store)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func openStore(conf *config.AppConfig) (repository.Store, error) {
	switch conf.Storage.Driver {
	case "", "file":
		return filestore.New(conf.Storage.Path), nil
	case "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		var (
			postgresDB *gorm.DB
			err        error
		)
		if dbURL != "" {
			postgresDB, err = db.OpenPostgresWithURL(dbURL)
		} else {
			postgresDB, err = db.OpenPostgres(conf.Postgres)
		}
		if err != nil {
			return nil, fmt.Errorf("db.OpenPostgres -> %w", err)
		}

		return gormstore.New(postgresDB)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
