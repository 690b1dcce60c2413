package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Idempotency  IdempotencyConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PANOPORT_APP_ENV" required:"true"`
	Port         string `envconfig:"PANOPORT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PANOPORT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PANOPORT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PANOPORT_DB_DSN"`
	Driver string `envconfig:"PANOPORT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PANOPORT_DB_HOST"`
	LegacyPort     int    `envconfig:"PANOPORT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PANOPORT_DB_USER"`
	LegacyPassword string `envconfig:"PANOPORT_DB_PASSWORD"`
	LegacyName     string `envconfig:"PANOPORT_DB_NAME"`
	LegacySSLMode  string `envconfig:"PANOPORT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PANOPORT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PANOPORT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PANOPORT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PANOPORT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PANOPORT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PANOPORT_REDIS_ADDR"`
	Password     string        `envconfig:"PANOPORT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PANOPORT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PANOPORT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PANOPORT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PANOPORT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PANOPORT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PANOPORT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries cart-wide pricing knobs that are deployment
// configuration rather than rule-store data.
type PricingConfig struct {
	DesignServiceFee     string `envconfig:"PANOPORT_PRICING_DESIGN_SERVICE_FEE" default:"0"`
	DefaultMinRentalDays int    `envconfig:"PANOPORT_PRICING_DEFAULT_MIN_RENTAL_DAYS" default:"7"`
}

func (p PricingConfig) validate() error {
	fee, err := p.DesignFee()
	if err != nil {
		return err
	}
	if fee.IsNegative() {
		return fmt.Errorf("design service fee cannot be negative")
	}
	if p.DefaultMinRentalDays < 1 {
		return fmt.Errorf("default min rental days must be positive")
	}
	return nil
}

// DesignFee parses the configured flat design-service fee.
func (p PricingConfig) DesignFee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(p.DesignServiceFee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid design service fee %q: %w", p.DesignServiceFee, err)
	}
	return fee, nil
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"PANOPORT_IDEMPOTENCY_TTL" default:"24h"`
}

// RateLimitConfig throttles the public API per client IP and per cart
// session. A zero window or zero limits disable the limiter.
type RateLimitConfig struct {
	Window       time.Duration `envconfig:"PANOPORT_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit      int           `envconfig:"PANOPORT_RATE_LIMIT_IP" default:"300"`
	SessionLimit int           `envconfig:"PANOPORT_RATE_LIMIT_SESSION" default:"120"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PANOPORT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PANOPORT_AUTO_MIGRATE" default:"false"`
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
