package config

import (
	"fmt"
	"strings"
)

// StorageMode selects where the durable session token lives.
type StorageMode string

const (
	// StorageModeFile keeps the token in a file under the user's config
	// directory. Default for single-user installs.
	StorageModeFile StorageMode = "file"
	// StorageModeRedis keeps the token in Redis. Used for shared or headless
	// deployments where several processes act as one client.
	StorageModeRedis StorageMode = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageMode.
func (s *StorageMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*s = StorageMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageMode: %q (valid options: file, redis)", v)
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// KeyPrefix namespaces token keys so several installs can share a server.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"pwmobile:"`
}

// StorageConfig groups session token storage configuration.
type StorageConfig struct {
	// Mode determines the token store implementation.
	Mode StorageMode `env:"STORAGE_MODE" envDefault:"file"`

	// TokenPath is the token file location (Mode=file). Empty resolves to
	// a default under os.UserConfigDir at startup.
	TokenPath string `env:"STORAGE_TOKEN_PATH" envDefault:""`

	// Redis connection (Mode=redis).
	Redis RedisConfig `envPrefix:"STORAGE_REDIS_"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.Redis.DB < 0 {
		s.Redis.DB = 0
	}
	if s.Redis.KeyPrefix == "" {
		s.Redis.KeyPrefix = "pwmobile:"
	}
}
