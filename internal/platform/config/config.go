package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process-level configuration. Everything is read from the
// environment so main stays lean.
type Server struct {
	Addr            string        `env:"EKATHRA_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"EKATHRA_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"EKATHRA_LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"EKATHRA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"EKATHRA_REQUEST_TIMEOUT" envDefault:"30s"`

	Admin   AdminConfig   `envPrefix:"EKATHRA_ADMIN_"`
	Event   EventConfig   `envPrefix:"EKATHRA_EVENT_"`
	Store   StoreConfig   `envPrefix:"EKATHRA_STORE_"`
	Redis   RedisConfig   `envPrefix:"EKATHRA_REDIS_"`
	Archive ArchiveConfig `envPrefix:"EKATHRA_ARCHIVE_"`
	Receipt ReceiptConfig `envPrefix:"EKATHRA_RECEIPT_"`
}

// AdminConfig holds the shared admin passphrase. PassphraseHash, a bcrypt
// hash, wins over the plaintext value when both are set.
type AdminConfig struct {
	// Use the default for development only; override in any shared deployment.
	Passphrase     string `env:"PASSPHRASE" envDefault:"ekathra25"`
	PassphraseHash string `env:"PASSPHRASE_HASH"`
}

// EventConfig is static metadata printed on every receipt.
type EventConfig struct {
	Name  string `env:"NAME" envDefault:"EKATHRA BATCH EVENT 25"`
	Date  string `env:"DATE" envDefault:"4 Nov 2025"`
	Venue string `env:"VENUE" envDefault:"Hyatt Regency"`
}

// StoreConfig selects and tunes the Record Store driver.
type StoreConfig struct {
	Driver      string        `env:"DRIVER" envDefault:"memory"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"5s"`
	DatabaseURL string        `env:"DATABASE_URL"`
	SQLitePath  string        `env:"SQLITE_PATH" envDefault:"ekathra.db"`
	Collection  string        `env:"COLLECTION" envDefault:"people"`
}

// RedisConfig mirrors the go-redis options we override.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// ArchiveConfig controls where generated receipts and exports are copied.
// Driver "none" disables archiving.
type ArchiveConfig struct {
	Driver      string `env:"DRIVER" envDefault:"none"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3PathStyle bool   `env:"S3_PATH_STYLE"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

// ReceiptConfig points at TrueType files used instead of the bundled PDF
// face, for events whose attendees write names in scripts it lacks.
type ReceiptConfig struct {
	FontPath     string `env:"FONT_PATH"`
	BoldFontPath string `env:"BOLD_FONT_PATH"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverRedis    = "redis"

	ArchiveDriverNone   = "none"
	ArchiveDriverMemory = "memory"
	ArchiveDriverS3     = "s3"
)

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that would only fail later at first use.
func (c Server) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite:
	case StoreDriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("EKATHRA_STORE_DATABASE_URL is required for the postgres driver")
		}
	case StoreDriverRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("EKATHRA_REDIS_URL is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Archive.Driver {
	case ArchiveDriverNone, ArchiveDriverMemory:
	case ArchiveDriverS3:
		if c.Archive.S3Bucket == "" {
			return fmt.Errorf("EKATHRA_ARCHIVE_S3_BUCKET is required for the s3 archive")
		}
	default:
		return fmt.Errorf("unknown archive driver %q", c.Archive.Driver)
	}

	if c.Admin.Passphrase == "" && c.Admin.PassphraseHash == "" {
		return fmt.Errorf("an admin passphrase or passphrase hash is required")
	}
	if c.Receipt.BoldFontPath != "" && c.Receipt.FontPath == "" {
		return fmt.Errorf("EKATHRA_RECEIPT_BOLD_FONT_PATH requires EKATHRA_RECEIPT_FONT_PATH")
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout must be positive")
	}
	return nil
}
