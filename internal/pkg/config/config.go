package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
	StoreMongo = "mongo"
)

type Config struct {
	Host      string `env:"HOST,       default=127.0.0.1"`
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LoginPath string `env:"LOGIN_PATH, default=/login"`

	API    APIConfig
	Tokens TokenConfig
	Map    MapConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

// APIConfig points at the KivuSafe backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=https://kivulisafebackend-production.up.railway.app"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// TokenConfig selects where the session token is persisted between runs.
type TokenConfig struct {
	Store string `env:"TOKEN_STORE, default=file"`
	Key   string `env:"TOKEN_KEY,   default=token"`
	File  string `env:"TOKEN_FILE"`
}

type MapConfig struct {
	CenterLat float64 `env:"MAP_CENTER_LAT, default=-1.680"`
	CenterLng float64 `env:"MAP_CENTER_LNG, default=29.220"`
	Zoom      int     `env:"MAP_ZOOM,       default=13"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=kivusafe"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=kivusafe:"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l; tests pass envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Tokens.Store {
	case StoreFile, StoreRedis, StoreMongo:
	default:
		return nil, fmt.Errorf("config: TOKEN_STORE must be one of file, redis, mongo (got %q)", cfg.Tokens.Store)
	}
	if cfg.Tokens.Store == StoreFile && cfg.Tokens.File == "" {
		cfg.Tokens.File = defaultTokenFile()
	}
	return &cfg, nil
}

// Addr is the address the portal listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsLoopback reports whether only this machine can reach the portal. The
// session is shared by every browser that connects, so binding wider hands
// the logged-in account to the whole network.
func (c *Config) IsLoopback() bool {
	if c.Host == "localhost" {
		return true
	}
	ip := net.ParseIP(c.Host)
	return ip != nil && ip.IsLoopback()
}

// IsProduction reports whether logs should be plain JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "kivusafe", "state.json")
}
