package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Registry modes.
const (
	RegistryMemory     = "memory"
	RegistryPersistent = "persistent"
)

// Config is read from an optional YAML file (CONFIG_PATH) with environment
// variables layered on top.
type Config struct {
	Issuer        string `yaml:"issuer" env:"AUTH_ISSUER" env-default:"mcauth"`
	JWTSecret     string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTSecretFile string `yaml:"jwt_secret_file" env:"AUTH_JWT_SECRET_FILE"`

	AccessTTL  time.Duration `yaml:"access_ttl" env:"AUTH_ACCESS_TTL" env-default:"2h"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env:"AUTH_REFRESH_TTL" env-default:"720h"`

	ClientsFile  string `yaml:"clients_file" env:"AUTH_CLIENTS_FILE"`
	RegistryMode string `yaml:"registry_mode" env:"AUTH_REGISTRY_MODE" env-default:"memory"`
	DatabaseFile string `yaml:"database_file" env:"AUTH_DATABASE_FILE" env-default:"auth.db"`

	Env       string `yaml:"env" env:"ENV" env-default:"dev"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	Port      int    `yaml:"port" env:"PORT" env-default:"8080"`

	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`

	// Zero disables the background sweep; expired tokens are then swept
	// whenever active tokens are listed.
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval" env:"HOUSEKEEPING_INTERVAL" env-default:"0s"`
}

// MinTokenTTL is the shortest token lifetime accepted. Token times are
// whole seconds, so anything shorter can yield exp == iat.
const MinTokenTTL = time.Second

var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads CONFIG_PATH when set, then the environment.
func LoadConfig() (Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, fmt.Errorf("config file %q: %w", path, err)
		}
		// ReadConfig overlays the environment after the file.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Issuer == "":
		return fmt.Errorf("%w: issuer is required", ErrInvalidConfig)
	case c.AccessTTL < MinTokenTTL:
		return fmt.Errorf("%w: access ttl must be at least %s", ErrInvalidConfig, MinTokenTTL)
	case c.RefreshTTL < MinTokenTTL:
		return fmt.Errorf("%w: refresh ttl must be at least %s", ErrInvalidConfig, MinTokenTTL)
	case c.RegistryMode != RegistryMemory && c.RegistryMode != RegistryPersistent:
		return fmt.Errorf("%w: registry mode %q (want %s or %s)", ErrInvalidConfig, c.RegistryMode, RegistryMemory, RegistryPersistent)
	case c.RegistryMode == RegistryPersistent && c.DatabaseFile == "":
		return fmt.Errorf("%w: persistent registry needs a database file", ErrInvalidConfig)
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	case c.HousekeepingInterval < 0:
		return fmt.Errorf("%w: housekeeping interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

// IsDev reports whether the service runs in the development environment.
func (c Config) IsDev() bool { return c.Env == "dev" }
