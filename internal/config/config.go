// Package config предоставляет структуры и функции для парсинга и загрузки конфига.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrMissingJWTSecret — в конфиге нет ключа подписи токенов.
var ErrMissingJWTSecret = errors.New("jwt secret key is not set")

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	PublicURL               string `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:3000"`
	MetricsAddress          string `yaml:"metrics_address" env:"METRICS_ADDRESS"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RabbitMQ                RabbitMQ `yaml:"rabbitmq"`
	SMTP                    SMTP     `yaml:"smtp"`
	Avatars                 Avatars  `yaml:"avatars"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	AccountTTL   time.Duration `yaml:"account_ttl" env-default:"5m"`
}

// JWTToken структура для работы с jwt-токеном. Время жизни токена фиксировано и не настраивается.
type JWTToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"JWT_SECRET"`
}

// RabbitMQ настройки подключения к брокеру сообщений.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// SMTP настройки почтового сервера для отправки писем подтверждения.
type SMTP struct {
	Host        string        `yaml:"host" env:"SMTP_HOST"`
	Port        string        `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User        string        `yaml:"user" env:"SMTP_USER"`
	Password    string        `yaml:"password" env:"SMTP_PASS"`
	From        string        `yaml:"from" env:"SMTP_FROM"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"10s"`
}

// Avatars каталоги для хранения аватаров и временных файлов загрузки.
type Avatars struct {
	Dir    string `yaml:"dir" env-default:"public/avatars"`
	TmpDir string `yaml:"tmp_dir" env-default:"tmp"`
	// MaxUploadSize ограничивает размер загружаемого файла в байтах.
	MaxUploadSize int64 `yaml:"max_upload_size" env-default:"5242880"`
}

// Load читает конфиг из файла path, переменные окружения имеют приоритет.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingJWTSecret)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH.
// Завершает процесс, если конфиг не найден, не читается или в нём нет ключа подписи токенов.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"PublicURL: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  AccountTTL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"SMTP:\n"+
			"  Host: %s\n"+
			"  Port: %s\n"+
			"Avatars:\n"+
			"  Dir: %s\n",
		c.Env,
		c.PublicURL,
		c.AddressRedis,
		c.DB,
		c.AccountTTL,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SMTP.Host,
		c.SMTP.Port,
		c.Avatars.Dir,
	)
}
