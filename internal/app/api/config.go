package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Snapshot backends selectable with SNAPSHOT_BACKEND.
const (
	BackendMemory    = "memory"
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                 string
	PostgresDSN          string
	FirestoreProjectID   string
	FirestoreCollection  string
	SnapshotBackend      string
	SnapshotWriteTimeout time.Duration
	TemporalAddress      string
	TemporalNamespace    string
	TemporalDisabled     bool
	SessionIdle          time.Duration
	AllowedOrigins       []string
	SecureCookies        bool
}

// LoadConfig reads an optional .env file and the environment, applies defaults,
// and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		FirestoreProjectID:   strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID")),
		FirestoreCollection:  strings.TrimSpace(os.Getenv("FIRESTORE_COLLECTION")),
		TemporalAddress:      envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:    envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:     isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SessionIdle:          30 * time.Minute,
		SnapshotWriteTimeout: 5 * time.Second,
		AllowedOrigins:       splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
		SecureCookies:        isTruthy(os.Getenv("SECURE_COOKIES")),
	}

	cfg.SnapshotBackend = strings.ToLower(envDefault("SNAPSHOT_BACKEND", defaultBackend(cfg)))
	switch cfg.SnapshotBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("SNAPSHOT_BACKEND=postgres requires POSTGRES_DSN")
		}
	case BackendFirestore:
		if cfg.FirestoreProjectID == "" {
			return Config{}, fmt.Errorf("SNAPSHOT_BACKEND=firestore requires FIRESTORE_PROJECT_ID")
		}
	default:
		return Config{}, fmt.Errorf("SNAPSHOT_BACKEND must be one of memory, postgres, firestore")
	}

	if raw := strings.TrimSpace(os.Getenv("SESSION_IDLE_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_IDLE_MINUTES must be a positive integer")
		}
		cfg.SessionIdle = time.Duration(minutes) * time.Minute
	}
	if raw := strings.TrimSpace(os.Getenv("SNAPSHOT_WRITE_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SNAPSHOT_WRITE_TIMEOUT must be a positive duration")
		}
		cfg.SnapshotWriteTimeout = d
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// defaultBackend prefers postgres when a DSN is configured, matching the
// catalog's fallback behaviour.
func defaultBackend(cfg Config) string {
	if cfg.PostgresDSN != "" {
		return BackendPostgres
	}
	return BackendMemory
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
