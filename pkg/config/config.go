package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "bookbazaar"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "BOOKBAZAAR_DB_DSN"
	EnvDBHost = "BOOKBAZAAR_DB_HOST"
	EnvDBUser = "BOOKBAZAAR_DB_USER"
	EnvDBName = "BOOKBAZAAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
	Rental       RentalConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Rental.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOOKBAZAAR_APP_ENV" required:"true"`
	Port         string `envconfig:"BOOKBAZAAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BOOKBAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKBAZAAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BOOKBAZAAR_DB_DSN"`
	Driver string `envconfig:"BOOKBAZAAR_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BOOKBAZAAR_DB_HOST"`
	LegacyPort     int    `envconfig:"BOOKBAZAAR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BOOKBAZAAR_DB_USER"`
	LegacyPassword string `envconfig:"BOOKBAZAAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"BOOKBAZAAR_DB_NAME"`
	LegacySSLMode  string `envconfig:"BOOKBAZAAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BOOKBAZAAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOOKBAZAAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOOKBAZAAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOOKBAZAAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BOOKBAZAAR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BOOKBAZAAR_REDIS_ADDR"`
	Password     string        `envconfig:"BOOKBAZAAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOOKBAZAAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOOKBAZAAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOOKBAZAAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOOKBAZAAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOOKBAZAAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOOKBAZAAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BOOKBAZAAR_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BOOKBAZAAR_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BOOKBAZAAR_JWT_EXPIRATION_MINUTES" default:"60"`
}

// CartConfig tunes the durable cart slots.
type CartConfig struct {
	SlotTTL time.Duration `envconfig:"BOOKBAZAAR_CART_SLOT_TTL" default:"720h"`
}

// RentalConfig controls the rental pricing terms offered at checkout.
type RentalConfig struct {
	// FractionBps is the rent price as basis points of the catalog price.
	FractionBps int `envconfig:"BOOKBAZAAR_RENTAL_FRACTION_BPS" default:"4000"`
	PeriodDays  int `envconfig:"BOOKBAZAAR_RENTAL_PERIOD_DAYS" default:"15"`
}

func (r RentalConfig) validate() error {
	if r.FractionBps <= 0 || r.FractionBps > 10000 {
		return fmt.Errorf("rental fraction must be within (0, 10000] basis points, got %d", r.FractionBps)
	}
	if r.PeriodDays <= 0 {
		return fmt.Errorf("rental period must be positive, got %d", r.PeriodDays)
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BOOKBAZAAR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BOOKBAZAAR_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"BOOKBAZAAR_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic  string `envconfig:"BOOKBAZAAR_PUBSUB_ORDERS_TOPIC" default:"bb-order-events"`
	BorrowsTopic string `envconfig:"BOOKBAZAAR_PUBSUB_BORROWS_TOPIC" default:"bb-borrow-events"`
}

// Enabled reports whether event publishing is configured at all.
func (p PubSubConfig) Enabled(gcp GCPConfig) bool {
	return strings.TrimSpace(gcp.ProjectID) != ""
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
