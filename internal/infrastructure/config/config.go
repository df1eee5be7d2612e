package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is the out-of-the-box signing secret. It exists so the
// service runs without setup, and so startup can warn loudly when a
// deployment forgot to override it.
const DefaultJWTSecret = "super_secret_key_change_this_in_prod"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET,  default=super_secret_key_change_this_in_prod"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=1h"`
	// BcryptCost 0 selects the bcrypt library default.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	Admin AdminConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AdminConfig is the bootstrap credential seeded when the user collection
// is empty at startup.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin"`
}

type StoreConfig struct {
	// Driver selects the collection backend: "jsonfile" or "mongo".
	Driver  string `env:"STORE_DRIVER, default=jsonfile"`
	DataDir string `env:"DATA_DIR,     default=./data"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	// Addr empty disables the product cache.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// UsingDefaultSecret reports whether the deployment left the signing secret
// at its shipped default.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
