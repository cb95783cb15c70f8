package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// DefaultPort is used when the listen address names only a host.
const DefaultPort = "8080"

// Snapshot backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

type Config struct {
	Listen       string `env:"LISTEN,            default=127.0.0.1:8080"`
	Employees    string `env:"EMPLOYEES_FILE"    validate:"required"`
	Participants string `env:"PARTICIPANTS_FILE" validate:"required"`
	SaveFile     string `env:"SAVE_FILE"`
	Debug        bool   `env:"DEBUG,             default=false"`
	LogLevel     string `env:"LOG_LEVEL,         default=info"`
	LogPretty    bool   `env:"LOG_PRETTY,        default=false"`

	Snapshot SnapshotConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type SnapshotConfig struct {
	Backend string `env:"SNAPSHOT_BACKEND, default=file" validate:"oneof=file redis mongo"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=rolodex"`
	Collection string `env:"MONGO_COLLECTION, default=snapshots"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	Key  string `env:"REDIS_KEY,  default=rolodex:snapshot"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the final configuration, after command-line overrides.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ListenAddr returns Listen as host:port, defaulting the port to 8080.
func (c *Config) ListenAddr() string {
	addr := strings.TrimSpace(c.Listen)
	if _, port, err := net.SplitHostPort(addr); err == nil && port != "" {
		return addr
	}
	host := strings.TrimSuffix(addr, ":")
	return net.JoinHostPort(host, DefaultPort)
}

// SnapshotEnabled reports whether state is persisted at all. The file backend
// needs a path; the database backends are always configured.
func (c *Config) SnapshotEnabled() bool {
	return c.Snapshot.Backend != BackendFile || c.SaveFile != ""
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
