package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	liststr "roster/pkg/platform/strings"
)

// EnvPrefix namespaces every environment variable, e.g. ROSTER_ADDR.
const EnvPrefix = "ROSTER"

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config is the whole service configuration.
type Config struct {
	Server        Server
	Store         Store
	Redis         RedisConfig
	Audit         Audit
	LogLevel      string
	SeedCountries []string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Store selects and configures the record store backend.
type Store struct {
	Kind        string
	DatabaseURL string
	SQLitePath  string
}

// RedisConfig configures the optional country cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	CacheTTL     time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Audit configures where lifecycle events go. Without brokers they are only
// logged.
type Audit struct {
	KafkaBrokers []string
	Topic        string
	QueueSize    int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("STORE", StoreMemory)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "data/roster.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("COUNTRY_CACHE_TTL", 10*time.Minute)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("AUDIT_TOPIC", "roster.audit")
	v.SetDefault("AUDIT_QUEUE_SIZE", 1024)
	v.SetDefault("SEED_COUNTRIES", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads configuration from ROSTER_* environment variables on top of
// defaults and validates it.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:            v.GetString("ADDR"),
			RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Store: Store{
			Kind:        strings.ToLower(strings.TrimSpace(v.GetString("STORE"))),
			DatabaseURL: v.GetString("DATABASE_URL"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("REDIS_URL"),
			CacheTTL:     v.GetDuration("COUNTRY_CACHE_TTL"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
		},
		Audit: Audit{
			KafkaBrokers: liststr.SplitList(v.GetString("KAFKA_BROKERS")),
			Topic:        v.GetString("AUDIT_TOPIC"),
			QueueSize:    v.GetInt("AUDIT_QUEUE_SIZE"),
		},
		LogLevel:      v.GetString("LOG_LEVEL"),
		SeedCountries: liststr.SplitList(v.GetString("SEED_COUNTRIES")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("%s_DATABASE_URL is required when %s_STORE=postgres", EnvPrefix, EnvPrefix)
		}
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("%s_SQLITE_PATH is required when %s_STORE=sqlite", EnvPrefix, EnvPrefix)
		}
	default:
		return fmt.Errorf("unknown store %q: want memory, postgres or sqlite", c.Store.Kind)
	}
	if c.Redis.URL != "" && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("%s_COUNTRY_CACHE_TTL must be positive", EnvPrefix)
	}
	if c.Audit.QueueSize < 1 {
		return fmt.Errorf("%s_AUDIT_QUEUE_SIZE must be positive, got %d", EnvPrefix, c.Audit.QueueSize)
	}
	if len(c.Audit.KafkaBrokers) > 0 && c.Audit.Topic == "" {
		return fmt.Errorf("%s_AUDIT_TOPIC is required with kafka brokers", EnvPrefix)
	}
	return nil
}
