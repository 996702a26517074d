// Package app собирает зависимости сервиса из конфигурации: хранилище и квоту.
// Общий код для cmd/commentary и cmd/commentary-reorder.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pribylovaa/commentary/internal/config"
	"github.com/pribylovaa/commentary/internal/quota"
	"github.com/pribylovaa/commentary/internal/storage"
	"github.com/pribylovaa/commentary/internal/storage/memory"
	"github.com/pribylovaa/commentary/internal/storage/mongo"
	"github.com/pribylovaa/commentary/internal/storage/postgres"
)

// Константы окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger - текст для local, JSON для dev/prod.
func SetupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// OpenStorage подключает хранилище по cfg.DB.Driver. Для postgres при DB.Migrate
// применяются встроенные миграции.
func OpenStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	const op = "app/OpenStorage"

	switch cfg.DB.Driver {
	case config.DriverMemory:
		return memory.New(), nil

	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if cfg.DB.Migrate {
			if err := st.Migrate(ctx); err != nil {
				st.Close()
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		return st, nil

	case config.DriverMongo:
		st, err := mongo.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return st, nil

	default:
		return nil, fmt.Errorf("%s: unknown driver %q", op, cfg.DB.Driver)
	}
}

// Quota - счётчик квоты и функция его закрытия.
// Без Redis или с нулевым лимитом квота не ограничена.
func Quota(ctx context.Context, cfg config.Config) (quota.Checker, func() error, error) {
	const op = "app/Quota"

	if cfg.Redis.URL == "" || cfg.Quota.Monthly <= 0 {
		return quota.Unlimited{}, func() error { return nil }, nil
	}

	q, err := quota.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.Prefix, cfg.Quota.Monthly)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return q, q.Close, nil
}
