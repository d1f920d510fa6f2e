package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrNotConfigured is returned when the backend URL or key is missing.
var ErrNotConfigured = errors.New("backend not configured: set DATABASE_URL and DATABASE_KEY")

type DatabaseConfig struct {
	URL  string
	Key  string
	Auto bool
}

type Config struct {
	Port     string
	Database DatabaseConfig
	JWT      struct {
		Secret string
		TTL    time.Duration
	}
	Realtime struct {
		Triggers     bool
		FetchTimeout time.Duration
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
}

// IsConfigured reports whether both backend connection settings are present.
func (d DatabaseConfig) IsConfigured() bool {
	return d.URL != "" && d.Key != ""
}

// DSN builds the connection string with the access key as password.
func (d DatabaseConfig) DSN() (string, error) {
	if !d.IsConfigured() {
		return "", ErrNotConfigured
	}
	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid DATABASE_URL: unsupported scheme %q", u.Scheme)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, d.Key)
	return u.String(), nil
}

// Load reads .env (if any) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_KEY", "")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("REALTIME_TRIGGERS", true)
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 15)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "erp-changes")
	return v
}

// FromViper maps a populated viper instance onto Config.
func FromViper(v *viper.Viper) *Config {
	var cfg Config
	cfg.Port = v.GetString("PORT")
	cfg.Database.URL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	cfg.Database.Key = strings.TrimSpace(v.GetString("DATABASE_KEY"))
	cfg.Database.Auto = v.GetBool("AUTO_MIGRATE")
	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.TTL = time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour
	cfg.Realtime.Triggers = v.GetBool("REALTIME_TRIGGERS")
	cfg.Realtime.FetchTimeout = time.Duration(v.GetInt("FETCH_TIMEOUT_SECONDS")) * time.Second
	cfg.Kafka.Topic = v.GetString("KAFKA_TOPIC")
	for _, b := range strings.Split(v.GetString("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
		}
	}
	return &cfg
}
