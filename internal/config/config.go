package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Salon     SalonConfig     `toml:"salon"`
	Inventory InventoryConfig `toml:"inventory"`
	Reminder  ReminderConfig  `toml:"reminder"`
	Telegram  TelegramConfig  `toml:"telegram"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SalonConfig struct {
	Name     string  `toml:"name"`
	Timezone string  `toml:"timezone"`
	AdminIDs []int64 `toml:"admin_ids"`
}

// Location часовой пояс салона
func (c SalonConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (c SalonConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// InventoryConfig окно генерации слотов: по одному слоту на каждый час [OpenHour, CloseHour]
type InventoryConfig struct {
	OpenHour    int `toml:"open_hour"`
	CloseHour   int `toml:"close_hour"`
	HorizonDays int `toml:"horizon_days"`
}

type ReminderConfig struct {
	LeadHours         int    `toml:"lead_hours"`
	RetryDelaySeconds int    `toml:"retry_delay_seconds"`
	MaxAttempts       int    `toml:"max_attempts"`
	SendTimeout       int    `toml:"send_timeout"`
	Text              string `toml:"text"`
}

func (c ReminderConfig) Lead() time.Duration {
	return time.Duration(c.LeadHours) * time.Hour
}

func (c ReminderConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
}

// Load читает конфигурацию из toml файла
// Перед разбором подгружает .env (если есть) и подставляет ${VAR} из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает toml, применяет значения по умолчанию и валидирует результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon_booking"
	}

	if c.Salon.Name == "" {
		c.Salon.Name = "Салон красоты"
	}
	if c.Salon.Timezone == "" {
		c.Salon.Timezone = "Europe/Moscow"
	}

	if c.Inventory.OpenHour == 0 && c.Inventory.CloseHour == 0 {
		c.Inventory.OpenHour = 10
		c.Inventory.CloseHour = 19
	}
	if c.Inventory.HorizonDays == 0 {
		c.Inventory.HorizonDays = 30
	}

	if c.Reminder.LeadHours == 0 {
		c.Reminder.LeadHours = 24
	}
	if c.Reminder.RetryDelaySeconds == 0 {
		c.Reminder.RetryDelaySeconds = 300
	}
	if c.Reminder.MaxAttempts == 0 {
		c.Reminder.MaxAttempts = 3
	}
	if c.Reminder.SendTimeout == 0 {
		c.Reminder.SendTimeout = 10
	}
	if strings.TrimSpace(c.Reminder.Text) == "" {
		c.Reminder.Text = "Напоминаем о записи на {service} завтра в {time}!"
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if _, err := c.Salon.Location(); err != nil {
		return fmt.Errorf("%w: unknown timezone %q: %v", ErrInvalidConfig, c.Salon.Timezone, err)
	}
	if c.Inventory.OpenHour < 0 || c.Inventory.CloseHour > 23 || c.Inventory.OpenHour > c.Inventory.CloseHour {
		return fmt.Errorf("%w: slot window %d..%d is out of range", ErrInvalidConfig,
			c.Inventory.OpenHour, c.Inventory.CloseHour)
	}
	if c.Inventory.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon_days must not be negative", ErrInvalidConfig)
	}
	if c.Reminder.LeadHours < 0 || c.Reminder.MaxAttempts < 1 {
		return fmt.Errorf("%w: reminder lead_hours must be >= 0 and max_attempts >= 1", ErrInvalidConfig)
	}
	return nil
}
