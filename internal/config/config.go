// Package config описывает конфигурацию commentary: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config - корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	DB         DBConfig         `yaml:"db"`
	Redis      RedisConfig      `yaml:"redis"`
	Limits     LimitsConfig     `yaml:"limits"`
	Quota      QuotaConfig      `yaml:"quota"`
	Moderation ModerationConfig `yaml:"moderation"`
	Reorder    ReorderConfig    `yaml:"reorder"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// HTTPConfig - публичный API.
type HTTPConfig struct {
	Host     string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:""`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MetricsConfig - отдельный листенер для /metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Host    string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port    string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// DBConfig - выбор и подключение хранилища.
type DBConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	URL    string `yaml:"url" env:"DATABASE_URL"`
	// Применять встроенные миграции при старте (только postgres).
	Migrate bool `yaml:"migrate" env:"DB_MIGRATE"`
}

// RedisConfig - счётчики квот. Пустой URL отключает квоты.
type RedisConfig struct {
	URL    string `yaml:"url" env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"commentary:"`
}

// LimitsConfig - лимиты на выдачу, глубину дерева и каскад.
type LimitsConfig struct {
	// Пагинация: page_size=0 -> берём Default; верхняя граница - Max.
	Default int32 `yaml:"default"   env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int32 `yaml:"max"       env:"MAX_LIMIT"     env-default:"300"`
	// Максимальная глубина ветки. Корень = 1.
	MaxDepth int32 `yaml:"max_depth" env:"MAX_DEPTH"    env-default:"3"`
	// Верхняя граница шагов каскадной очистки.
	MaxCascade int `yaml:"max_cascade" env:"MAX_CASCADE" env-default:"64"`
}

// QuotaConfig - месячная квота новых комментариев на владельца сайта. 0 - без ограничений.
type QuotaConfig struct {
	Monthly int64 `yaml:"monthly" env:"QUOTA_MONTHLY" env-default:"0"`
}

// ModerationConfig - новые комментарии получают статус pending вместо approved.
type ModerationConfig struct {
	Premoderate bool `yaml:"premoderate" env:"PREMODERATE" env-default:"false"`
}

// ReorderConfig - параметры пересчёта ключей порядка.
type ReorderConfig struct {
	BatchSize int `yaml:"batch_size" env:"REORDER_BATCH_SIZE" env-default:"500"`
}

// TimeoutConfig - сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MustLoad - обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to overlay env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate - базовая валидация значений.
func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverMongo:
		if c.DB.URL == "" {
			return fmt.Errorf("db.url is required for driver %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unknown db.driver %q", c.DB.Driver)
	}

	if c.Limits.Default <= 0 {
		return errors.New("limits.default must be > 0")
	}

	if c.Limits.Max <= 0 {
		return errors.New("limits.max must be > 0")
	}

	if c.Limits.Default > c.Limits.Max {
		return errors.New("limits.default must be <= limits.max")
	}

	if c.Limits.MaxDepth < 1 || c.Limits.MaxDepth > 32 {
		return errors.New("limits.max_depth must be in [1, 32]")
	}

	if c.Limits.MaxCascade <= 0 {
		return errors.New("limits.max_cascade must be > 0")
	}

	if c.Quota.Monthly < 0 {
		return errors.New("quota.monthly must be >= 0")
	}

	if c.Reorder.BatchSize <= 0 {
		return errors.New("reorder.batch_size must be > 0")
	}

	if c.Timeouts.Service <= 0 {
		return errors.New("timeouts.service must be > 0")
	}

	return nil
}
