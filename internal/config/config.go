package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server        ServerConfig   `toml:"server"`
	Database      DatabaseConfig `toml:"database"`
	Logs          LogsConfig     `toml:"logs"`
	Metrics       MetricsConfig  `toml:"metrics"`
	Schedule      ScheduleConfig `toml:"schedule"`
	ServicesCache CacheConfig    `toml:"services_cache"`
	Auth          AuthConfig     `toml:"auth"`
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
}

// DSN собирает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig дневной шаблон слотов салона
// Слоты генерируются двумя блоками (утро и день) с фиксированным шагом,
// общие для всех услуг
type ScheduleConfig struct {
	MorningOpen    string `toml:"morning_open"`    // "09:00"
	MorningClose   string `toml:"morning_close"`   // "11:30" (включительно, последний слот)
	AfternoonOpen  string `toml:"afternoon_open"`  // "14:00"
	AfternoonClose string `toml:"afternoon_close"` // "17:00" (включительно, последний слот)
	SlotMinutes    int    `toml:"slot_minutes"`    // шаг сетки, минуты
}

// CacheConfig настройки кеша каталога услуг
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// AuthConfig настройки аутентификации администратора
type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	BootstrapAdmin  bool   `toml:"bootstrap_admin"`
	AdminUsername   string `toml:"admin_username"`
	AdminPassword   string `toml:"admin_password"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if c.Schedule.SlotMinutes <= 0 {
		return fmt.Errorf("schedule.slot_minutes must be positive")
	}
	if c.ServicesCache.TTLSeconds <= 0 {
		return fmt.Errorf("services_cache.ttl_seconds must be positive")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth.token_ttl_minutes must be positive")
	}
	return nil
}
