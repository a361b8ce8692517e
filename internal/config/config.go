package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	AppPort           string
	StorageDriver     string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	AutoMigrate       bool
	MigrationsPath    string
	TrustedProxies    []string
	RedisURL          string
	RedisTLS          bool
	GenerationLockTTL time.Duration
	LLMProvider       string
	LLMModel          string
	LLMBaseURL        string
	LLMAPIKey         string
	LLMTimeout        time.Duration
	CompactOnDelete   bool
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageMySQL)),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "schedsync"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "schedsync"),
		DbName:            getEnv("MYSQL_DATABASE", "schedsync"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		AutoMigrate:       getBool("AUTO_MIGRATE", true),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "db/migrations"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		RedisTLS:          getBool("REDIS_TLS", false),
		GenerationLockTTL: getDuration("GENERATION_LOCK_TTL", 60*time.Second),
		LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMBaseURL:        os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:         getEnv("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
		LLMTimeout:        getDuration("LLM_TIMEOUT", 45*time.Second),
		CompactOnDelete:   getBool("COMPACT_ON_DELETE", false),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

// Validate rejects settings that would let a generation lock expire while
// the generator call it guards may still be running.
func (c *Config) Validate() error {
	if c.GenerationLockTTL < time.Second {
		return fmt.Errorf("GENERATION_LOCK_TTL must be at least 1s, got %s", c.GenerationLockTTL)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLMTimeout)
	}
	if c.GenerationLockTTL <= c.LLMTimeout {
		return fmt.Errorf("GENERATION_LOCK_TTL (%s) must exceed LLM_TIMEOUT (%s)", c.GenerationLockTTL, c.LLMTimeout)
	}
	switch c.StorageDriver {
	case StorageMySQL, StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

// getDuration accepts Go durations ("45s", "1m") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
