package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime parameter of the print service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Printer  PrinterConfig  `mapstructure:"printer"`
	Database DatabaseConfig `mapstructure:"database"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// PrinterConfig parameterizes the ESC/POS boundary. InvoiceFallbackIP is the
// address used when an invoice request carries no printer_ip and no default
// printer is registered; an empty value turns a missing address into a caller
// error instead of a silent hardcoded default.
type PrinterConfig struct {
	Port              int           `mapstructure:"port"`
	ProbeTimeout      time.Duration `mapstructure:"probe_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	StatusCheck       bool          `mapstructure:"status_check"`
	InvoiceFallbackIP string        `mapstructure:"invoice_fallback_ip"`
	Timezone          string        `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type RabbitMQConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	VHost    string `mapstructure:"vhost"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// Load reads the YAML config at path, applies defaults and PRINT_* environment
// overrides (PRINT_SERVER_PORT, PRINT_DATABASE_PASSWORD, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("printer.port", 9100)
	v.SetDefault("printer.probe_timeout", 3*time.Second)
	v.SetDefault("printer.write_timeout", 5*time.Second)
	v.SetDefault("printer.status_check", false)
	v.SetDefault("printer.timezone", "America/Bogota")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.vhost", "/")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("PRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file is fine: defaults plus env overrides are a complete
	// configuration for a printer-only deployment.
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if _, err := time.LoadLocation(cfg.Printer.Timezone); err != nil {
		return nil, fmt.Errorf("invalid printer timezone %q: %w", cfg.Printer.Timezone, err)
	}
	return &cfg, nil
}

// Location resolves the configured receipt timezone. Load has already
// validated it, so failures here fall back to UTC.
func (p PrinterConfig) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
