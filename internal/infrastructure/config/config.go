package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs access tokens. Supplied from the environment at process
	// start; the service refuses to boot without it.
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=30m"`

	SQLitePath string `env:"SQLITE_PATH, default=data/backoffice.db"`

	StaticDir string `env:"STATIC_DIR, default=build"`
	MediaDir  string `env:"MEDIA_DIR,  default=media"`

	VisitWorkers int `env:"VISIT_WORKERS, default=4"`

	Redis Redis
	Admin SeedAdmin
}

type Redis struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedAdmin describes the bootstrap admin account created at startup when no
// user with that username exists. Seeding is skipped when Password is empty.
type SeedAdmin struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Email    string `env:"ADMIN_EMAIL,    default=admin@example.com"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
