package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	ResourceCatalog IntegrationConfig     `toml:"resource_catalog"`
	DeliveryService IntegrationConfig     `toml:"delivery_service"`
	Booking         BookingConfig         `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig настройки движка бронирования
type BookingConfig struct {
	// DefaultGranularityMinutes шаг генерации слотов по умолчанию
	DefaultGranularityMinutes int `toml:"default_granularity_minutes"`

	// WaitlistExpiryDays срок жизни записи листа ожидания
	WaitlistExpiryDays int `toml:"waitlist_expiry_days"`

	// LifecycleSweepSeconds интервал перевода завершившихся бронирований в терминальный статус
	LifecycleSweepSeconds int `toml:"lifecycle_sweep_seconds"`

	// WaitlistSweepSeconds интервал экспирации записей листа ожидания
	WaitlistSweepSeconds int `toml:"waitlist_sweep_seconds"`

	// DispatchSweepSeconds интервал отправки накопленных notification intents
	DispatchSweepSeconds int `toml:"dispatch_sweep_seconds"`
}

// Load загружает конфигурацию из TOML файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "reservation-service"
	}
	if cfg.ResourceCatalog.Timeout == 0 {
		cfg.ResourceCatalog.Timeout = 5
	}
	if cfg.DeliveryService.Timeout == 0 {
		cfg.DeliveryService.Timeout = 5
	}
	if cfg.Booking.DefaultGranularityMinutes == 0 {
		cfg.Booking.DefaultGranularityMinutes = domain.DefaultGranularityMinutes
	}
	if cfg.Booking.WaitlistExpiryDays == 0 {
		cfg.Booking.WaitlistExpiryDays = domain.DefaultWaitlistExpiryDays
	}
	if cfg.Booking.LifecycleSweepSeconds == 0 {
		cfg.Booking.LifecycleSweepSeconds = 60
	}
	if cfg.Booking.WaitlistSweepSeconds == 0 {
		cfg.Booking.WaitlistSweepSeconds = 300
	}
	if cfg.Booking.DispatchSweepSeconds == 0 {
		cfg.Booking.DispatchSweepSeconds = 10
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.ResourceCatalog.URL == "" {
		return fmt.Errorf("config: resource_catalog.url is required")
	}
	if cfg.DeliveryService.URL == "" {
		return fmt.Errorf("config: delivery_service.url is required")
	}
	return nil
}
