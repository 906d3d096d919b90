package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the service.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	GitHub   GitHubConfig
	JWT      JWTConfig
	Session  SessionConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// GitHubConfig holds GitHub OAuth application configuration.
type GitHubConfig struct {
	ClientID        string
	ClientSecret    string
	CallbackURL     string
	Scopes          []string
	ExchangeTimeout time.Duration
}

// JWTConfig holds bearer token configuration.
type JWTConfig struct {
	Issuer   string
	Secret   string
	TokenTTL time.Duration
}

// SessionConfig holds session cookie and store configuration.
type SessionConfig struct {
	// Secret is the HMAC key used to sign the session cookie value.
	Secret     string
	CookieName string
	TTL        time.Duration
	// Store selects the backend: "redis" or "memory".
	Store string
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	// FrontendOrigin is where successful logins are redirected and the only
	// origin allowed by CORS.
	FrontendOrigin   string
	SecureCookies    bool
	RateLimitEnabled bool
	RateLimitRPS     int
	RateLimitBurst   int
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level        string
	Environment  string
	AuditEnabled bool
	AuditDBPath  string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 3001),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "mindpool"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "mindpool"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		GitHub: GitHubConfig{
			ClientID:        getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret:    getEnv("GITHUB_CLIENT_SECRET", ""),
			CallbackURL:     getEnv("CALLBACK_URL", "http://localhost:3001/auth/github/callback"),
			Scopes:          getEnvSlice("GITHUB_SCOPES", []string{"user:email"}),
			ExchangeTimeout: getEnvDuration("GITHUB_EXCHANGE_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			Issuer:   getEnv("JWT_ISSUER", "mindpool"),
			Secret:   getEnv("JWT_SECRET", "dev-jwt-secret"),
			TokenTTL: getEnvDuration("JWT_TOKEN_TTL", 2*time.Hour),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev-session-secret"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "mindpool_session"),
			TTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
			Store:      getEnv("SESSION_STORE", "redis"),
		},
		Security: SecurityConfig{
			FrontendOrigin:   getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
			SecureCookies:    getEnvBool("SECURE_COOKIES", false),
			RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			RateLimitRPS:     getEnvInt("RATE_LIMIT_RPS", 20),
			RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Logging: LoggingConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			Environment:  getEnv("APP_ENV", "development"),
			AuditEnabled: getEnvBool("LOG_AUDIT_ENABLED", false),
			AuditDBPath:  getEnv("LOG_AUDIT_DB_PATH", "./data/audit.db"),
		},
	}
}

// Validate checks that required settings are present. The development
// defaults above only exist for local runs; a production deployment must
// supply every secret explicitly.
func (c *Config) Validate() error {
	if c.GitHub.ClientID == "" || c.GitHub.ClientSecret == "" {
		return fmt.Errorf("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET are required")
	}
	if c.Security.FrontendOrigin == "" {
		return fmt.Errorf("FRONTEND_ORIGIN must not be empty")
	}
	if c.IsProduction() {
		if c.JWT.Secret == "" || c.JWT.Secret == "dev-jwt-secret" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Session.Secret == "" || c.Session.Secret == "dev-session-secret" {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if !c.Security.SecureCookies {
			return fmt.Errorf("SECURE_COOKIES must be enabled in production")
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Logging.Environment == "production"
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

// URL returns the PostgreSQL connection URL used by the migration runner.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
