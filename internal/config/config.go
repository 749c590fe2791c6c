package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Export   ExportConfig
}

type AppConfig struct {
	Env          string
	Port         string
	Timezone     string
	Location     *time.Location
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker            string
	NotificationTopic string
	ConsumerGroup     string
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type ExportConfig struct {
	CompanyName string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "3000"),
		Timezone: getEnv("APP_TIMEZONE", "Africa/Casablanca"),
	}
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.App.Location = loc

	if cfg.App.ReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.App.WriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.App.IdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	retries, err := strconv.Atoi(getEnv("DB_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %w", err)
	}
	cfg.Database = DatabaseConfig{
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       getEnv("DB_PORT", "5432"),
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "smart_attendance"),
		SSLMode:    getEnv("DB_SSLMODE", "disable"),
		MaxRetries: retries,
	}

	cfg.Redis = RedisConfig{Addr: getEnv("REDIS_ADDR", "")}

	cfg.Kafka = KafkaConfig{
		Broker:            getEnv("KAFKA_BROKER", ""),
		NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "attendance.notifications.v1"),
		ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "smart-attendance-notifications"),
	}

	accessTTL, err := getDuration("JWT_ACCESS_TTL", "1h")
	if err != nil {
		return nil, err
	}
	refreshTTL, err := getDuration("JWT_REFRESH_TTL", "168h")
	if err != nil {
		return nil, err
	}
	cfg.JWT = JWTConfig{
		Secret:     getEnv("JWT_SECRET", ""),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}

	cfg.Export = ExportConfig{CompanyName: getEnv("EXPORT_COMPANY_NAME", "Smart Attendance")}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
