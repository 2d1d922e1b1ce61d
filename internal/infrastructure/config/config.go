package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// KV backends for the flat statistics store.
const (
	KVFile   = "file"
	KVRedis  = "redis"
	KVMemory = "memory"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogMode         string

	// Guide content
	ContentDir     string
	ContentFiles   []string // empty means every guide file in ContentDir
	ContentWorkers int

	// Storage
	DataDir    string
	SQLitePath string
	KVBackend  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	shutdown, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	workers, err := getInt("CONTENT_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	dataDir := getenvDefault("DATA_DIR", "./data")
	cfg := &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: shutdown,
		LogMode:         getenvDefault("LOG_MODE", "dev"),
		ContentDir:      getenvDefault("CONTENT_DIR", "./guides"),
		ContentFiles:    splitList(os.Getenv("CONTENT_FILES")),
		ContentWorkers:  workers,
		DataDir:         dataDir,
		SQLitePath:      getenvDefault("SQLITE_PATH", filepath.Join(dataDir, "interviewer.db")),
		KVBackend:       strings.ToLower(getenvDefault("KV_BACKEND", KVFile)),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		RedisPrefix:     getenvDefault("REDIS_PREFIX", "interviewer:"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.KVBackend {
	case KVFile, KVMemory:
	case KVRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: KV_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: unknown KV_BACKEND %q", c.KVBackend)
	}
	if c.ContentWorkers < 1 {
		return fmt.Errorf("config: CONTENT_WORKERS must be positive, got %d", c.ContentWorkers)
	}
	return nil
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid integer: %w", k, v, err)
	}
	return n, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
