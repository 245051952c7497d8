// config — источник загрузки конфигурации портала.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Backoffice BackofficeConfig `yaml:"backoffice"`
	Cache      CacheConfig      `yaml:"cache"`
	Session    SessionConfig    `yaml:"session"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// HTTPConfig — публичный REST-сервер портала.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50070"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50075"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// BackofficeConfig — удалённый backoffice API, за которым живёт весь контент.
type BackofficeConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"BACKOFFICE_BASE_URL"   env-default:"https://backoffice.thecontemporary.news"`
	APIPrefix string        `yaml:"api_prefix" env:"BACKOFFICE_API_PREFIX" env-default:"/api/v1"`
	Timeout   time.Duration `yaml:"timeout"    env:"BACKOFFICE_TIMEOUT"    env-default:"15s"`
}

// CacheConfig — кэш результатов чтения.
// RedisURL пустой -> кэш в памяти процесса.
type CacheConfig struct {
	FreshFor time.Duration `yaml:"fresh_for" env:"CACHE_FRESH_FOR" env-default:"60s"`
	RedisURL string        `yaml:"redis_url" env:"CACHE_REDIS_URL" env-default:""`
	Prefix   string        `yaml:"prefix"    env:"CACHE_PREFIX"    env-default:"portal:q:"`
}

// SessionConfig — каталог durable-хранилища токенов и пользовательских настроек.
type SessionConfig struct {
	Dir string `yaml:"dir" env:"SESSION_DIR" env-default:".portal-session"`
}

// TimeoutConfig — общий дедлайн обработки входящего запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
