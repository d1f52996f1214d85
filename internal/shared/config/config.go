package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port           string        `env:"PORT" envDefault:"8080"`
	GinMode        string        `env:"GIN_MODE" envDefault:"debug"`
	APIVersion     string        `env:"API_VERSION" envDefault:"v1"`
	APIPrefix      string        `env:"API_PREFIX" envDefault:"/api"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout    time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	MaxHeaderBytes int           `env:"MAX_HEADER_BYTES" envDefault:"1048576"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	Database  DatabaseConfig  `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Kafka     KafkaConfig     `envPrefix:"KAFKA_"`
	Email     EmailConfig     `envPrefix:"SMTP_"`
	Booking   BookingConfig   `envPrefix:"BOOKING_"`
	Telemetry TelemetryConfig `envPrefix:"OTEL_"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	Name     string `env:"NAME" envDefault:"zombieland"`
	User     string `env:"USER" envDefault:"zombieland"`
	Password string `env:"PASSWORD" envDefault:"zombieland"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	DSN      string `env:"DSN"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string        `env:"HOST" envDefault:"localhost"`
	Port     string        `env:"PORT" envDefault:"6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	PoolSize int           `env:"POOL_SIZE" envDefault:"10"`
	Addr     string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `env:"SECRET" envDefault:"change-me-in-production"`
	JWTExpiresIn     time.Duration `env:"EXPIRES_IN" envDefault:"15m"`
	RefreshExpiresIn time.Duration `env:"REFRESH_EXPIRES_IN" envDefault:"168h"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `env:"ENABLED" envDefault:"true"`
	WindowDuration  time.Duration `env:"WINDOW_DURATION" envDefault:"60s"`
	DefaultRequests int           `env:"DEFAULT_REQUESTS" envDefault:"60"`
	PublicRequests  int           `env:"PUBLIC_REQUESTS" envDefault:"100"`
	AuthRequests    int           `env:"AUTH_REQUESTS" envDefault:"10"`
	BookingRequests int           `env:"BOOKING_REQUESTS" envDefault:"20"`
	UserRequests    int           `env:"USER_REQUESTS" envDefault:"60"`
	AdminRequests   int           `env:"ADMIN_REQUESTS" envDefault:"200"`
	HealthRequests  int           `env:"HEALTH_REQUESTS" envDefault:"300"`
	WhitelistedIPs  []string      `env:"WHITELISTED_IPS" envSeparator:","`
}

// KafkaConfig holds the reservation event stream settings
type KafkaConfig struct {
	Enabled       bool     `env:"ENABLED" envDefault:"false"`
	Brokers       []string `env:"BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Topic         string   `env:"TOPIC" envDefault:"zombieland.reservations"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"zombieland-notifications"`
}

// EmailConfig holds email configuration
type EmailConfig struct {
	Host      string `env:"HOST"`
	Port      int    `env:"PORT" envDefault:"587"`
	Username  string `env:"USERNAME"`
	Password  string `env:"PASSWORD"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"noreply@zombieland.fr"`
}

// BookingConfig holds reservation policy
type BookingConfig struct {
	// AllowPricingGaps lets reservations cover days that match no pricing period
	AllowPricingGaps   bool          `env:"ALLOW_PRICING_GAPS" envDefault:"false"`
	MaxTickets         int           `env:"MAX_TICKETS" envDefault:"20"`
	CompletionInterval time.Duration `env:"COMPLETION_INTERVAL" envDefault:"1h"`
}

// TelemetryConfig holds tracing configuration. Tracing is off without an endpoint.
type TelemetryConfig struct {
	Endpoint    string `env:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"zombieland-api"`
}

// Load reads .env when present, then the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	}
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg, nil
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
