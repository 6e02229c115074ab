package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Speech    SpeechConfig
	Ingest    IngestConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Janitor   JanitorConfig
	Vault     VaultConfig
	App       AppConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string
	Port         string
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
	TimeoutIdle  time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SessionConfig holds reviewer session token configuration
type SessionConfig struct {
	Secret     string
	Expiration time.Duration
}

// SpeechConfig holds the text-to-speech greeting configuration
type SpeechConfig struct {
	APIKey    string
	Voice     string
	TTSModel  string
	ChatModel string
	OutputDir string
	Enabled   bool
}

// IngestConfig holds bulk ingestion configuration
type IngestConfig struct {
	MaxUploadBytes int64
	SnapshotDir    string
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Duration time.Duration
}

// JanitorConfig holds periodic file cleanup configuration
type JanitorConfig struct {
	Enabled  bool
	Interval time.Duration
	MaxAge   time.Duration
}

// VaultConfig holds the optional Vault secret source configuration
type VaultConfig struct {
	Address    string
	Token      string
	KVMount    string
	SecretPath string
	Enabled    bool
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env     string
	Name    string
	Version string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// godotenv does not override already-set variables, so the most
	// specific file wins.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			TimeoutRead:  getDurationEnv("SERVER_TIMEOUT_READ", 15*time.Second),
			TimeoutWrite: getDurationEnv("SERVER_TIMEOUT_WRITE", 15*time.Second),
			TimeoutIdle:  getDurationEnv("SERVER_TIMEOUT_IDLE", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "csreview"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "csreview_db"),
			SSLMode:         getEnv("DB_SSLMODE", "prefer"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", ""),
			Expiration: getDurationEnv("SESSION_EXPIRATION", 12*time.Hour),
		},
		Speech: SpeechConfig{
			APIKey:    getEnv("SPEECH_API_KEY", ""),
			Voice:     getEnv("SPEECH_VOICE", "alloy"),
			TTSModel:  getEnv("SPEECH_TTS_MODEL", "tts-1"),
			ChatModel: getEnv("SPEECH_CHAT_MODEL", "gpt-4o-mini"),
			OutputDir: getEnv("SPEECH_OUTPUT_DIR", os.TempDir()),
			Enabled:   getBoolEnv("SPEECH_ENABLED", true),
		},
		Ingest: IngestConfig{
			MaxUploadBytes: int64(getIntEnv("INGEST_MAX_UPLOAD_BYTES", 10<<20)),
			SnapshotDir:    getEnv("INGEST_SNAPSHOT_DIR", os.TempDir()),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "OPTIONS"}),
			AllowedHeaders:   getSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
			ExposedHeaders:   getSliceEnv("CORS_EXPOSED_HEADERS", []string{"Link"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getIntEnv("CORS_MAX_AGE", 300),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getBoolEnv("RATE_LIMIT_ENABLED", true),
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Duration: getDurationEnv("RATE_LIMIT_DURATION", 1*time.Minute),
		},
		Janitor: JanitorConfig{
			Enabled:  getBoolEnv("JANITOR_ENABLED", true),
			Interval: getDurationEnv("JANITOR_INTERVAL", 1*time.Hour),
			MaxAge:   getDurationEnv("JANITOR_MAX_AGE", 24*time.Hour),
		},
		Vault: VaultConfig{
			Address:    getEnv("VAULT_ADDR", "http://localhost:8200"),
			Token:      getEnv("VAULT_TOKEN", ""),
			KVMount:    getEnv("VAULT_KV_MOUNT", "secret"),
			SecretPath: getEnv("VAULT_SECRET_PATH", "csreview"),
			Enabled:    getBoolEnv("VAULT_ENABLED", false),
		},
		App: AppConfig{
			Env:     getEnv("APP_ENV", "development"),
			Name:    getEnv("APP_NAME", "CodeSwitchReview"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration. Store credentials and the speech
// API key are required at process start; their absence is fatal unless
// the corresponding collaborator is disabled or Vault will supply them.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Database.Password == "" && !c.Vault.Enabled {
		return fmt.Errorf("DB_PASSWORD is required when Vault is disabled")
	}
	if c.Vault.Enabled && c.Vault.Token == "" {
		return fmt.Errorf("VAULT_TOKEN is required when Vault is enabled")
	}
	if c.Speech.Enabled && c.Speech.APIKey == "" && !c.Vault.Enabled {
		return fmt.Errorf("SPEECH_API_KEY is required when the speech greeting is enabled")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, v := range parts {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
