package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Config holds all configuration
type Config struct {
	MySQL    MySQLConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Migrate  bool
	HTTPAddr string
	LogJSON  bool
	Seed     SeedConfig
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	ExpireMinutes int
	Issuer        string
}

// SeedConfig holds the bootstrap owner account created when the users
// table is empty
type SeedConfig struct {
	OwnerEmail    string
	OwnerPassword string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getEnv("MYSQL_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			ExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 1440),
			Issuer:        getEnv("JWT_ISSUER", "go_backoffice"),
		},
		Migrate:  getEnv("MIGRATE", "1") == "1",
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogJSON:  getEnv("LOG_JSON", "0") == "1",
		Seed: SeedConfig{
			OwnerEmail:    getEnv("SEED_OWNER_EMAIL", "owner@example.com"),
			OwnerPassword: getEnv("SEED_OWNER_PASSWORD", ""),
		},
	}

	// Validate required fields
	if cfg.MySQL.DSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// LoadFromINI loads configuration from an INI file with environment
// variable override (priority: ENV > INI > default)
func LoadFromINI(iniPath string) (*Config, error) {
	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load INI file: %w", err)
	}

	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		raw := getValue(envKey, iniSection, iniKey, "")
		if raw == "" {
			return defaultValue
		}
		if intValue, err := strconv.Atoi(raw); err == nil {
			return intValue
		}
		return defaultValue
	}

	cfg := &Config{
		MySQL: MySQLConfig{
			DSN: getValue("MYSQL_DSN", "mysql", "dsn", ""),
		},
		Redis: RedisConfig{
			Addr:     getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password: getValue("REDIS_PASS", "redis", "password", ""),
			DB:       getValueInt("REDIS_DB", "redis", "db", 0),
		},
		JWT: JWTConfig{
			Secret:        getValue("JWT_SECRET", "jwt", "secret", ""),
			ExpireMinutes: getValueInt("JWT_EXPIRE_MINUTES", "jwt", "expire_minutes", 1440),
			Issuer:        getValue("JWT_ISSUER", "jwt", "issuer", "go_backoffice"),
		},
		Migrate:  getValue("MIGRATE", "app", "migrate", "1") == "1",
		HTTPAddr: getValue("HTTP_ADDR", "app", "http_addr", ":8080"),
		LogJSON:  getValue("LOG_JSON", "app", "log_json", "0") == "1",
		Seed: SeedConfig{
			OwnerEmail:    getValue("SEED_OWNER_EMAIL", "seed", "owner_email", "owner@example.com"),
			OwnerPassword: getValue("SEED_OWNER_PASSWORD", "seed", "owner_password", ""),
		},
	}

	if cfg.MySQL.DSN == "" {
		return nil, fmt.Errorf("mysql dsn is required (env MYSQL_DSN or [mysql] dsn)")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (env JWT_SECRET or [jwt] secret)")
	}

	return cfg, nil
}
