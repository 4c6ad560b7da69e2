// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/vpn-billing/internal/models"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string                 `yaml:"env"`
	StorageConnectionString string                 `yaml:"storage_connection_string"`
	ProvisionerURL          string                 `yaml:"provisioner_url"`
	TelegramToken           string                 `yaml:"telegram_token"`
	Billing                 models.Rules           `yaml:"billing"`
	Notifications           []models.ScheduleEntry `yaml:"notifications"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ структура для настройки подключения к брокеру уведомлений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url"`
	RabbitMQMaxRetries int           `yaml:"max_retries"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH. Правила тарификации и
// расписание напоминаний при отсутствии в файле берутся по умолчанию.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	if cfg.Billing == (models.Rules{}) {
		cfg.Billing = models.DefaultRules()
	}
	if cfg.Billing.GraceDays <= 0 {
		log.Fatalf("billing.grace_days must be positive, got %d", cfg.Billing.GraceDays)
	}
	if len(cfg.Notifications) == 0 {
		cfg.Notifications = models.DefaultSchedule()
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"ProvisionerURL: %s\n"+
			"Billing:\n"+
			"  TrialDays: %d\n"+
			"  GraceDays: %d\n"+
			"  GraceSpeedMbps: %d\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.ProvisionerURL,
		c.Billing.TrialDays,
		c.Billing.GraceDays,
		c.Billing.GraceSpeedMbps,
		c.AddressRedis,
		c.DB,
		c.RabbitMQURL,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
	)
}
