package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every runtime setting the service reads from the environment.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Websocket WebsocketConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// LayoutTTL bounds how long a cached floor layout may be served.
	LayoutTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type SecurityConfig struct {
	JWTSecret string
	// JWTPublicKey holds an RSA public key in PEM form; when set, tokens are
	// verified as RS256 instead of HS256.
	JWTPublicKey string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type WebsocketConfig struct {
	// SendBuffer is the per-client outbound queue size before the hub drops the client.
	SendBuffer int
}

// Load reads configuration from environment variables, applying defaults that
// suit local development. Only the database name and JWT secret are mandatory.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			User: getenv("DB_USER", "root"),
			Pass: os.Getenv("DB_PASS"),
			Host: getenv("DB_HOST", "localhost"),
			Port: getenv("DB_PORT", "3306"),
			Name: os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:      getenv("REDIS_ADDR", "localhost:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        getint("REDIS_DB", 0),
			LayoutTTL: getdur("LAYOUT_CACHE_TTL", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(firstNonEmpty(os.Getenv("KAFKA_BROKERS"), os.Getenv("KAFKA_BROKER"))),
			Topic:   getenv("KAFKA_EVENTS_TOPIC", "mesaya.events"),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		},
		Logging: LoggingConfig{
			Directory: getenv("LOG_DIR", "./logs"),
			Level:     getenv("LOG_LEVEL", "info"),
			Format:    getenv("LOG_FORMAT", "text"),
		},
		Websocket: WebsocketConfig{
			SendBuffer: getint("WS_SEND_BUFFER", 8),
		},
	}

	if cfg.Database.Name == "" {
		return nil, fmt.Errorf("missing required env var: DB_NAME")
	}
	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
