package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=ledgerdesk_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultJWTTTL = 30 * 24 * time.Hour
const defaultReconcileAt = "02:00"
const minJWTSecretLength = 16

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	DatabaseDSN     string        `yaml:"databaseDsn"`
	MigrationsDir   string        `yaml:"migrationsDir"`
	StorageDriver   string        `yaml:"storageDriver"`
	HTTPAddr        string        `yaml:"httpAddr"`
	JWTSecret       string        `yaml:"jwtSecret"`
	JWTTTL          time.Duration `yaml:"jwtTtl"`
	CookieSecure    bool          `yaml:"cookieSecure"`
	LogLevel        string        `yaml:"logLevel"`
	DBMaxOpenConns  int           `yaml:"dbMaxOpenConns"`
	DBMaxIdleConns  int           `yaml:"dbMaxIdleConns"`
	ReconcileEnable bool          `yaml:"reconcileEnabled"`
	ReconcileAt     string        `yaml:"reconcileAt"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally environment variables, each layer overriding the last.
func Load() (Config, error) {
	cfg := Config{
		DatabaseDSN:     defaultConnectionString,
		MigrationsDir:   filepath.Join("src", "migrations"),
		StorageDriver:   StorageDriverPostgres,
		HTTPAddr:        defaultHTTPAddr,
		JWTTTL:          defaultJWTTTL,
		LogLevel:        "info",
		DBMaxOpenConns:  30,
		DBMaxIdleConns:  20,
		ReconcileEnable: true,
		ReconcileAt:     defaultReconcileAt,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.DatabaseDSN = normalizeConnectionString(cfg.DatabaseDSN)
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.StorageDriver != StorageDriverPostgres && c.StorageDriver != StorageDriverMemory {
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	if _, err := time.Parse("15:04", c.ReconcileAt); err != nil {
		return fmt.Errorf("RECONCILE_AT must be HH:MM: %w", err)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.DatabaseDSN, "DATABASE_DSN")
	setString(&cfg.MigrationsDir, "MIGRATIONS_DIR")
	setString(&cfg.StorageDriver, "STORAGE_DRIVER")
	setString(&cfg.HTTPAddr, "HTTP_ADDR")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.ReconcileAt, "RECONCILE_AT")

	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL: %w", err)
		}
		cfg.JWTTTL = ttl
	}

	var err error
	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", cfg.CookieSecure); err != nil {
		return err
	}
	if cfg.ReconcileEnable, err = boolEnv("RECONCILE_ENABLED", cfg.ReconcileEnable); err != nil {
		return err
	}
	if cfg.DBMaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns); err != nil {
		return err
	}
	if cfg.DBMaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns); err != nil {
		return err
	}

	return nil
}

func setString(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// normalizeConnectionString accepts either a libpq DSN/URL or the
// semicolon separated Host=...;Database=... form and returns a libpq DSN.
func normalizeConnectionString(raw string) string {
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") || !strings.Contains(raw, ";") {
		return raw
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
