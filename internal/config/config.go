// Package config предоставялет структуры и функции для парсинга и загрузки конфига.
//
// Конфиг читается из YAML-файла, путь к которому задается переменной CONFIG_PATH.
// Любое поле можно переопределить переменной окружения (см. теги env).
// Если CONFIG_PATH не задан, конфиг собирается только из окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const minSecretLen = 32

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string        `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	StorageTimeout          time.Duration `yaml:"storage_timeout" env:"STORAGE_TIMEOUT" env-default:"5s"`
	MigrationsPath          string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Session                 `yaml:"session"`
	Security                `yaml:"security"`
	RedisConnection         `yaml:"redis_connection"`
	RateLimit               `yaml:"rate_limit"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":4000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"24h"`
	Issuer       string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"todo-api"`
	Audience     string        `yaml:"audience" env:"JWT_AUDIENCE" env-default:"todo-api-clients"`
}

// Session настройки передачи токена через cookie.
type Session struct {
	CookieEnabled bool   `yaml:"cookie_enabled" env:"SESSION_COOKIE_ENABLED"`
	CookieName    string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"auth_token"`
}

// Security настройки хеширования паролей и блокировки входа.
type Security struct {
	BcryptCost         int           `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	LockoutMaxAttempts int           `yaml:"lockout_max_attempts" env:"LOCKOUT_MAX_ATTEMPTS" env-default:"5"`
	LockoutWindow      time.Duration `yaml:"lockout_window" env:"LOCKOUT_WINDOW" env-default:"15m"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает redis, ограничение частоты запросов тогда работает в памяти процесса.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RateLimit ограничение частоты запросов к открытым эндпоинтам авторизации.
type RateLimit struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"10"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"1m"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL            string        `yaml:"url" env:"RABBITMQ_URL"`
	ConnectRetries int           `yaml:"connect_retries" env-default:"5"`
	RetryDelay     time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла configPath (или только из окружения, если путь пуст)
// и проверяет его.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.StorageConnectionString == "" {
		return errors.New("storage_connection_string is required")
	}
	if len(c.JWTSecretKey) < minSecretLen {
		return fmt.Errorf("jwt_secret_key must be at least %d bytes", minSecretLen)
	}
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.StorageTimeout <= 0 {
		return errors.New("storage_timeout must be positive")
	}
	return nil
}

// IsProduction сообщает, запущен ли сервис в продакшен-режиме.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProd
}

// CookieSessions сообщает, передается ли токен через http-only cookie.
// В продакшене cookie включены всегда.
func (c *Config) CookieSessions() bool {
	return c.CookieEnabled || c.IsProduction()
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"StorageTimeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"  Issuer: %s\n"+
			"  Audience: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.StorageTimeout,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.Issuer,
		c.Audience,
		c.AddressRedis,
		mask(c.URL),
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
