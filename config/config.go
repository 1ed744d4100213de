package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env into the process environment if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

// Config is built once at startup and handed to component constructors;
// nothing below main reads the environment directly.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	SMTP     SMTPConfig

	WebOrigin          string
	SessionTTL         time.Duration
	AppName            string
	BootstrapHostEmail string
}

type DatabaseConfig struct {
	Host, User, Password, Name, Port string
}

// DSN returns the Postgres connection string, or an error when a required
// value is missing. Storage config gets no silent fallback: a service that
// cannot reach its store must refuse to start.
func (d DatabaseConfig) DSN() (string, error) {
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database config incomplete: DB_HOST, DB_USER and DB_NAME are required")
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port,
	), nil
}

type RedisConfig struct {
	Addr     string
	Password string
}

// SMTPConfig may be left empty; the notifier then degrades to a logged
// no-op rather than failing RSVP writes.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (s SMTPConfig) Configured() bool {
	return s.Host != "" && (s.Username != "" || s.From != "")
}

func Load() Config {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			ttl = d
		}
	}

	return Config{
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     get("DB_PORT", "5432"),
		},
		Redis: RedisConfig{
			Addr:     get("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     get("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		WebOrigin:          get("WEB_ORIGIN", "http://localhost:3000"),
		SessionTTL:         ttl,
		AppName:            get("APP_NAME", "RSVP Link"),
		BootstrapHostEmail: os.Getenv("BOOTSTRAP_HOST_EMAIL"),
	}
}
