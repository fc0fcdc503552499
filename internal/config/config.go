// Package config loads the server configuration from command-line flags,
// environment variables and an optional .env file.
package config

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Quota    QuotaConfig
	Photo    PhotoConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	DataDir     string // holds the sqlite file and the generated token key
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
}

// DatabaseConfig selects the record store.
type DatabaseConfig struct {
	Driver       string // sqlite or postgres
	DSN          string // defaults to <DataDir>/qlp.db for sqlite
	MaxOpenConns int
}

// AuthConfig holds login and token configuration.
type AuthConfig struct {
	// TokenKey is the 32-byte PASETO v4 key. When unset a key is generated
	// and persisted under DataDir.
	TokenKey            []byte
	AccessTokenDuration time.Duration
	// DefaultPassword is the password accepted for any CPF found in the roster.
	DefaultPassword string
	LoginPerMinute  int
	LoginBurst      int
	// Argon2id cost for the fixed credential hashes.
	HashMemoryKiB   int
	HashIterations  int
	HashParallelism int
}

// QuotaConfig controls how roster values count toward the legal quotas.
type QuotaConfig struct {
	ProtectedFlag    string
	ApprenticeMarker string
}

// PhotoConfig limits profile photo uploads.
type PhotoConfig struct {
	MaxBytes int
}

// Load reads configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("qlp", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := fs.String("data-dir", "", "Directory for local data (default: ~/.qlp)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 30s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	dbDriver := fs.String("db-driver", "", "Database driver: sqlite or postgres (default: sqlite)")
	dbDSN := fs.String("db-dsn", "", "Database DSN (default: <data-dir>/qlp.db)")

	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (default: 12h)")
	protectedFlag := fs.String("protected-flag", "", "Roster value marking the protected class (default: YES)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Missing .env file is fine; existing variables win over the file.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
			DataDir:     getConfigValue(*dataDir, "DATA_DIR", ""),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Driver:       getConfigValue(*dbDriver, "DB_DRIVER", "sqlite"),
			DSN:          getConfigValue(*dbDSN, "DB_DSN", ""),
			MaxOpenConns: getIntConfigValue("", "DB_MAX_OPEN_CONNS", 4),
		},
		Auth: AuthConfig{
			DefaultPassword: getConfigValue("", "DEFAULT_PASSWORD", "123456"),
			LoginPerMinute:  getIntConfigValue("", "LOGIN_RATE_PER_MINUTE", 20),
			LoginBurst:      getIntConfigValue("", "LOGIN_RATE_BURST", 10),
			HashMemoryKiB:   getIntConfigValue("", "AUTH_HASH_MEMORY_KIB", 64*1024),
			HashIterations:  getIntConfigValue("", "AUTH_HASH_ITERATIONS", 3),
			HashParallelism: getIntConfigValue("", "AUTH_HASH_PARALLELISM", 4),
		},
		Quota: QuotaConfig{
			ProtectedFlag:    getConfigValue(*protectedFlag, "QUOTA_PROTECTED_FLAG", "YES"),
			ApprenticeMarker: getConfigValue("", "QUOTA_APPRENTICE_MARKER", "JOVEM APRENDIZ"),
		},
		Photo: PhotoConfig{
			MaxBytes: getIntConfigValue("", "PHOTO_MAX_BYTES", 5<<20),
		},
	}

	var err error
	durations := []struct {
		dst   *time.Duration
		flag  string
		env   string
		value string
		name  string
	}{
		{&cfg.Auth.AccessTokenDuration, *accessTokenDuration, "ACCESS_TOKEN_DURATION", "12h", "access token duration"},
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s", "read timeout"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "30s", "write timeout"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", "idle timeout"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.env, d.value)
		if *d.dst, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.name, raw, err)
		}
	}

	if keyHex := os.Getenv("AUTH_TOKEN_KEY"); keyHex != "" {
		if cfg.Auth.TokenKey, err = hex.DecodeString(keyHex); err != nil {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_KEY: %w", err)
		}
	}

	if err := cfg.expandDataDir(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = filepath.Join(cfg.App.DataDir, "qlp.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database driver: %q (must be sqlite or postgres)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database DSN is required")
	}

	if c.Auth.TokenKey != nil && len(c.Auth.TokenKey) != 32 {
		return fmt.Errorf("token key must be 32 bytes, got %d", len(c.Auth.TokenKey))
	}
	if c.Auth.AccessTokenDuration <= 0 {
		return errors.New("access token duration must be positive")
	}
	if c.Auth.DefaultPassword == "" {
		return errors.New("default password cannot be empty")
	}
	if c.Auth.LoginPerMinute <= 0 || c.Auth.LoginBurst <= 0 {
		return errors.New("login rate limit must be positive")
	}
	if c.Auth.HashMemoryKiB <= 0 || c.Auth.HashIterations <= 0 {
		return errors.New("password hash cost must be positive")
	}
	if c.Auth.HashParallelism <= 0 || c.Auth.HashParallelism > 255 {
		return fmt.Errorf("password hash parallelism must be 1-255, got %d", c.Auth.HashParallelism)
	}

	if c.Quota.ProtectedFlag == "" {
		return errors.New("protected flag cannot be empty")
	}

	if c.Photo.MaxBytes <= 0 {
		return errors.New("photo size limit must be positive")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataDir defaults the data directory to ~/.qlp.
func (c *Config) expandDataDir() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.App.DataDir, filepath.Join(homeDir, ".qlp"))
	if err != nil {
		return err
	}
	c.App.DataDir = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
