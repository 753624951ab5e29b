package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"printshop/infrastructure/session"
)

// Config is read from the environment once at startup.
type Config struct {
	Addr              string `envconfig:"APP_ADDR" default:":8080"`
	DBPath            string `envconfig:"SQLITE_PATH"`
	SessionFile       string `envconfig:"SESSION_FILE"`
	SessionTTLSeconds int    `envconfig:"SESSION_TTL_SECONDS" default:"7200"`
	// MigrationsDir empty means the migrations embedded in the binary.
	MigrationsDir string `envconfig:"MIGRATIONS_DIR"`

	Username string `envconfig:"APP_USER" required:"true"`
	Password string `envconfig:"APP_PASSWORD" required:"true"`

	// RequireExistingCustomer makes new deliveries fail for unknown customers
	// instead of creating them.
	RequireExistingCustomer bool `envconfig:"ORDER_REQUIRE_CUSTOMER" default:"false"`
}

// Load reads the environment and fills in path defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("load config: APP_USER and APP_PASSWORD must not be empty")
	}
	if err := session.CheckUsername(cfg.Username); err != nil {
		return nil, fmt.Errorf("load config: invalid APP_USER: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = session.DefaultPath()
	}
	if cfg.SessionTTLSeconds <= 0 {
		slog.Warn("invalid SESSION_TTL_SECONDS, using default", slog.Int("value", cfg.SessionTTLSeconds))
		cfg.SessionTTLSeconds = int(session.DefaultTTL / time.Second)
	}
	return &cfg, nil
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// defaultDBPath keeps the database under the user's data dir.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "app.db"
	}
	return filepath.Join(home, ".local", "share", "3d.iego", "app.db")
}

// DBPathFromEnv resolves only SQLITE_PATH, for tools that do not serve logins.
func DBPathFromEnv() (string, error) {
	var storage struct {
		DBPath string `envconfig:"SQLITE_PATH"`
	}
	if err := envconfig.Process("", &storage); err != nil {
		return "", fmt.Errorf("load storage config: %w", err)
	}
	if storage.DBPath == "" {
		return defaultDBPath(), nil
	}
	return storage.DBPath, nil
}
