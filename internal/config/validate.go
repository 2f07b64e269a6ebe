package config

import (
	"fmt"
	"strings"

	"github.com/sakif/itembox/internal/auth"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < auth.MinSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", auth.MinSecretLen, len(c.Auth.JWTSecret))
	}

	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))

	switch s.Driver {
	case DriverFile:
		if s.Path == "" {
			return fmt.Errorf("path is required for the %q driver", s.Driver)
		}
	case DriverSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the %q driver", s.Driver)
		}
	case DriverRedis:
		if s.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the %q driver", s.Driver)
		}
		if s.RedisDB < 0 {
			return fmt.Errorf("redis_db must be >= 0 (got %d)", s.RedisDB)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s, %s or %s)", s.Driver, DriverFile, DriverRedis, DriverSQLite)
	}

	return nil
}
