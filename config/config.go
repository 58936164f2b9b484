package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Store     StoreConfig
	Firebase  FirebaseConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Layout    LayoutConfig
	Directory DirectoryConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

type StoreConfig struct {
	Backend         string
	SitesCollection string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
	AuthRequired    bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	PreferencesTTL time.Duration
}

type LayoutConfig struct {
	DesktopBreakpoint int
	FlyoutCloseDelay  time.Duration
	// SessionIdle is how long an unwatched shell session is kept in memory.
	SessionIdle time.Duration
}

type DirectoryConfig struct {
	ResyncCron         string
	MutationRatePerMin int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "json"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(getEnv("STORE_BACKEND", StoreFirestore)),
			SitesCollection: getEnv("SITES_COLLECTION", "obras"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			AuthRequired:    getEnvAsBool("AUTH_REQUIRED", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "obralog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:           getEnv("REDIS_ADDR", "localhost:6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			PreferencesTTL: time.Duration(getEnvAsInt("PREFERENCES_TTL_HOURS", 0)) * time.Hour,
		},
		Layout: LayoutConfig{
			DesktopBreakpoint: getEnvAsInt("DESKTOP_BREAKPOINT_PX", 1024),
			FlyoutCloseDelay:  time.Duration(getEnvAsInt("FLYOUT_CLOSE_DELAY_MS", 300)) * time.Millisecond,
			SessionIdle:       time.Duration(getEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		},
		Directory: DirectoryConfig{
			ResyncCron:         getEnv("DIRECTORY_RESYNC_CRON", ""),
			MutationRatePerMin: getEnvAsInt("MUTATION_RATE_PER_MIN", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case StoreFirestore:
		if c.Firebase.ProjectID == "" && c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID or FIREBASE_CREDENTIALS_PATH is required for the firestore store")
		}
	case StorePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	// without a credentials file the Admin SDK uses application default credentials
	if c.Firebase.AuthRequired && c.Firebase.ProjectID == "" && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID or FIREBASE_CREDENTIALS_PATH is required when AUTH_REQUIRED is set")
	}

	if c.Layout.DesktopBreakpoint <= 0 {
		return fmt.Errorf("DESKTOP_BREAKPOINT_PX must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
