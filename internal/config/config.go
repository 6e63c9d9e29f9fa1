package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/barberbook/booking-service/internal/domain"
	"github.com/barberbook/booking-service/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
// Секреты (пароль БД, адрес Redis) можно переопределить переменными окружения,
// .env файл подхватывается автоматически при наличии.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	Kafka        KafkaConfig        `toml:"kafka"`
	Auth         AuthConfig         `toml:"auth"`
	Booking      BookingConfig      `toml:"booking"`
	Verification VerificationConfig `toml:"verification"`
	RateLimit    RateLimitConfig    `toml:"ratelimit"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Logs         LogsConfig         `toml:"logs"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`     // seconds
	WriteTimeout    int    `toml:"write_timeout"`    // seconds
	IdleTimeout     int    `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int    `toml:"shutdown_timeout"` // seconds
	Environment     string `toml:"environment"`      // development | production
}

// IsProduction reports whether the service runs in production mode
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis (кеш слотов + сессии верификации телефона)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// KafkaConfig настройки публикации событий о записях
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// AdminCredential одна admin-пара из allow-list
type AdminCredential struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt
}

// AuthConfig настройки админской сессии
type AuthConfig struct {
	Admins          []AdminCredential `toml:"admins"`
	SessionTTLHours int               `toml:"session_ttl_hours"`
}

// BookingConfig бизнес-настройки записи
type BookingConfig struct {
	Timezone         string   `toml:"timezone"`
	SameDayBufferMin int      `toml:"same_day_buffer_minutes"`
	Slots            []string `toml:"slots"`
}

// SlotTemplate returns the configured slot template, falling back to the
// built-in default when the config does not declare slots.
func (c BookingConfig) SlotTemplate() (domain.SlotTemplate, error) {
	if len(c.Slots) == 0 {
		return domain.DefaultSlotTemplate, nil
	}

	template := make(domain.SlotTemplate, 0, len(c.Slots))
	for _, raw := range c.Slots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid slot %q: %w", raw, err)
		}
		template = append(template, slot)
	}
	return template, nil
}

// VerificationConfig настройки верификации телефона
type VerificationConfig struct {
	CodeTTLMinutes int    `toml:"code_ttl_minutes"`
	MaxAttempts    int    `toml:"max_attempts"`
	SMSWebhookURL  string `toml:"sms_webhook_url"`
	SMSToken       string `toml:"sms_token"`
}

// RateLimitConfig лимит запросов на публичные эндпоинты (на один IP)
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Load reads the configuration file and applies environment overrides
func Load(path string) (*Config, error) {
	// .env опционален, его отсутствие не является ошибкой
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SMS_WEBHOOK_TOKEN"); v != "" {
		cfg.Verification.SMSToken = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "development"
	}
	if cfg.Auth.SessionTTLHours == 0 {
		cfg.Auth.SessionTTLHours = 24
	}
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = domain.DefaultTimezone
	}
	if cfg.Booking.SameDayBufferMin == 0 {
		cfg.Booking.SameDayBufferMin = domain.DefaultSameDayBufferMinutes
	}
	if cfg.Verification.CodeTTLMinutes == 0 {
		cfg.Verification.CodeTTLMinutes = 5
	}
	if cfg.Verification.MaxAttempts == 0 {
		cfg.Verification.MaxAttempts = 3
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "barberbook-booking"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if len(cfg.Auth.Admins) == 0 {
		return fmt.Errorf("config: at least one admin credential is required")
	}
	for _, admin := range cfg.Auth.Admins {
		if admin.Username == "" || admin.PasswordHash == "" {
			return fmt.Errorf("config: admin credentials require username and password_hash")
		}
	}
	if _, err := cfg.Booking.SlotTemplate(); err != nil {
		return err
	}
	return nil
}
