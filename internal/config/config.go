package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName      string
	AppEnv       string
	AppPort      string
	SnapshotPath string
	RedisURL     string
	ListCacheTTL time.Duration
	NATSURL      string
	EventSubject string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GRADECAST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Gradecast API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("snapshot.path", "data/students.json")
	v.SetDefault("cache.list_ttl", "1m")
	v.SetDefault("events.subject", "gradecast.students")

	ttlString := v.GetString("cache.list_ttl")
	if ttlString == "" {
		ttlString = "1m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid list cache ttl: %w", err)
	}

	cfg := Config{
		AppName:      v.GetString("app.name"),
		AppEnv:       v.GetString("app.env"),
		AppPort:      v.GetString("app.port"),
		SnapshotPath: v.GetString("snapshot.path"),
		RedisURL:     v.GetString("redis.url"),
		ListCacheTTL: ttl,
		NATSURL:      v.GetString("nats.url"),
		EventSubject: v.GetString("events.subject"),
	}

	if cfg.SnapshotPath == "" {
		return Config{}, fmt.Errorf("snapshot path must be provided")
	}

	return cfg, nil
}
