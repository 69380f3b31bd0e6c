package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	Store   StoreConfig
	UserDB  UserDBConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Media   MediaConfig
	Payment PaymentConfig
	Session SessionConfig
	Sweeper SweeperConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"talenthub-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	// BaseURL is the fallback origin for checkout redirect targets
	// when the request carries no Origin header.
	BaseURL string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
}

// StoreConfig holds the SQLite store settings (investments, showcases,
// payment events, and users unless USER_DB_TYPE says otherwise).
type StoreConfig struct {
	Path string `envconfig:"STORE_DB_PATH" default:"./data/talenthub.db"`
}

// UserDBConfig selects the user/profile backend.
type UserDBConfig struct {
	Type     string `envconfig:"USER_DB_TYPE" default:"sqlite"` // sqlite or mysql
	Host     string `envconfig:"USER_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"USER_DB_PORT" default:"3306"`
	Name     string `envconfig:"USER_DB_NAME" default:"talenthub"`
	User     string `envconfig:"USER_DB_USER" default:"root"`
	Password string `envconfig:"USER_DB_PASS" default:""`
}

// RedisConfig holds Redis connection settings (sessions + cache).
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CacheConfig holds talent directory cache settings.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"1m"`
}

// MediaConfig holds object store settings for showcase media.
type MediaConfig struct {
	Endpoint  string `envconfig:"MEDIA_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"MEDIA_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"MEDIA_SECRET_KEY" default:""`
	Bucket    string `envconfig:"MEDIA_BUCKET" default:"talent-media"`
	UseSSL    bool   `envconfig:"MEDIA_USE_SSL" default:"false"`
	// PublicBaseURL overrides the endpoint-derived URL for stored
	// objects (e.g. a CDN in front of the bucket).
	PublicBaseURL string `envconfig:"MEDIA_PUBLIC_BASE_URL" default:""`
	// MaxUploadBytes bounds a single showcase upload.
	MaxUploadBytes int64 `envconfig:"MEDIA_MAX_UPLOAD_BYTES" default:"52428800"`
}

// PaymentConfig holds payment processor settings.
type PaymentConfig struct {
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY" default:""`
	WebhookSecret   string `envconfig:"STRIPE_WEBHOOK_SECRET" default:""`
	Currency        string `envconfig:"PAYMENT_CURRENCY" default:"usd"`
	ProductName     string `envconfig:"PAYMENT_PRODUCT_NAME" default:"Investment in Talent"`
	SuccessPath     string `envconfig:"PAYMENT_SUCCESS_PATH" default:"/investment-success"`
	CancelPath      string `envconfig:"PAYMENT_CANCEL_PATH" default:"/investment-canceled"`
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

// SweeperConfig holds the pending-investment sweeper settings.
type SweeperConfig struct {
	Enabled  bool          `envconfig:"SWEEPER_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"SWEEPER_INTERVAL" default:"1h"`
	// MaxPendingAge matches the processor's checkout session lifetime:
	// a pending row older than this can never complete.
	MaxPendingAge time.Duration `envconfig:"SWEEPER_MAX_PENDING_AGE" default:"24h"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Address returns the Redis address in host:port format.
func (r *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DSN returns the MySQL data source name for the user database.
func (u *UserDBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		u.User, u.Password, u.Host, u.Port, u.Name)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
