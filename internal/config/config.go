// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel                string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Access                  `yaml:"access"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэш сводок.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"2s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"500ms"`
	SummaryTTL   time.Duration `yaml:"summary_ttl" env-default:"30s"`
}

// RabbitMQ структура для настройки рассылки журнала аудита
type RabbitMQ struct {
	Enabled    bool          `yaml:"enabled" env:"RABBITMQ_ENABLED"`
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Access структура с настройками доступа узлов и API
type Access struct {
	APIKey       string   `yaml:"api_key" env:"API_KEY"`
	APIKeyHeader string   `yaml:"api_key_header" env-default:"API-KEY"`
	SecretHeader string   `yaml:"secret_header" env-default:"X-AC-Key"`
	NodeNetworks []string `yaml:"node_networks" env:"NODE_NETWORKS" env-separator:","`
}

// RateLimit структура для ограничения частоты запросов узлов
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" env-default:"10"`
	Burst             int     `yaml:"burst" env-default:"20"`
}

// Load читает конфиг из файла path и переменных окружения
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига из файла, указанного в CONFIG_PATH
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

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"LogLevel: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"  SummaryTTL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  URL: %s\n"+
			"Access:\n"+
			"  APIKey: %s\n"+
			"  NodeNetworks: %v\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.LogLevel,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressRedis,
		mask(c.Password),
		c.DB,
		c.SummaryTTL,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Enabled,
		mask(c.URL),
		mask(c.APIKey),
		c.NodeNetworks,
		c.RequestsPerSecond,
		c.Burst,
	)
}
