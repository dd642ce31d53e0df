// Package config конфигурация сервиса из config.toml.
// Секреты (ключ Resend, пароль SMTP) в файл не пишутся — они читаются
// из переменных окружения, опционально подгружаемых из .env (godotenv).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Notifications NotificationsConfig `toml:"notifications"`
	SMTP          SMTPConfig          `toml:"smtp"`

	// ResendAPIKey ключ Resend API из окружения (RESEND_API_KEY).
	// Если пустой, письма уходят через SMTP.
	ResendAPIKey string `toml:"-"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN возвращает строку подключения для lib/pq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig правила планирования. Передаются в engine явно,
// движок не читает глобальное состояние процесса.
type BookingConfig struct {
	BufferMinutes  int `toml:"buffer_minutes"`   // пауза после сеанса
	MinLeadMinutes int `toml:"min_lead_minutes"` // минимум между запросом и началом
	LockTimeoutMS  int `toml:"lock_timeout_ms"`  // ограничение ожидания блокировки слота
}

// NotificationsConfig данные для писем клиенту и администратору.
// Строки location/parking/door_code/floor только отображаются в письмах
// и не влияют на логику бронирования.
type NotificationsConfig struct {
	AdminEmail     string `toml:"admin_email"`
	FromEmail      string `toml:"from_email"`
	AdminPortalURL string `toml:"admin_portal_url"`
	ContactURL     string `toml:"contact_url"`
	Location       string `toml:"location"`
	Parking        string `toml:"parking"`
	DoorCode       string `toml:"door_code"`
	Floor          string `toml:"floor"`
}

// SMTPConfig SMTP fallback для отправки писем без Resend.
// Пароль берётся из окружения (SMTP_PASSWORD).
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"-"`
}

// Load читает конфигурацию из TOML файла и накладывает секреты из окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// .env опционален: в проде переменные приходят из окружения контейнера
	_ = godotenv.Load()

	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// validate проверяет обязательные поля конфигурации
func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Notifications.AdminEmail == "" {
		return fmt.Errorf("config: notifications.admin_email is required")
	}
	if c.Notifications.FromEmail == "" {
		return fmt.Errorf("config: notifications.from_email is required")
	}
	return nil
}

// applyDefaults выставляет значения по умолчанию для незаполненных полей
func (c *Config) applyDefaults() {
	if c.Booking.BufferMinutes <= 0 {
		c.Booking.BufferMinutes = 60
	}
	if c.Booking.MinLeadMinutes <= 0 {
		c.Booking.MinLeadMinutes = 120
	}
	if c.Booking.LockTimeoutMS <= 0 {
		c.Booking.LockTimeoutMS = 3000
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "migrations"
	}
	if c.Logs.File == "" {
		c.Logs.File = "service.log"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}
