package config

import (
	"os"
	"strconv"
	"time"
)

// Identity provider modes.
const (
	ProviderJWT      = "jwt"
	ProviderSupabase = "supabase"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	DBMaxOpenConns int

	// Identity provider
	IdentityProvider  string
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	AccessTokenCookie string
	ProviderTimeout   time.Duration

	// Local accounts (register/login issue Supabase-shaped tokens)
	LocalAuthEnabled bool
	JWTIssuer        string
	JWTAccessExpiry  time.Duration

	// Server
	Port          string
	CORSOrigins   string
	AppEnv        string
	SentryDSN     string
	RateLimit     int
	AuthRateLimit int

	// Logs
	LogRetentionDays int
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "temply"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		DBMaxOpenConns: parseInt(getEnv("DB_MAX_OPEN_CONNS", "50"), 50),

		IdentityProvider:  getEnv("IDENTITY_PROVIDER", ProviderJWT),
		SupabaseURL:       getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		AccessTokenCookie: getEnv("ACCESS_TOKEN_COOKIE", "sb-access-token"),
		ProviderTimeout:   parseDuration(getEnv("PROVIDER_TIMEOUT", "10s"), 10*time.Second),

		LocalAuthEnabled: parseBool(getEnv("LOCAL_AUTH_ENABLED", "true")),
		JWTIssuer:        getEnv("JWT_ISSUER", "temply"),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"), time.Hour),

		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		AppEnv:        getEnv("APP_ENV", "development"),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
		RateLimit:     parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "60"), 60),
		AuthRateLimit: parseInt(getEnv("AUTH_RATE_LIMIT_PER_MINUTE", "10"), 10),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// UsesSupabaseProvider reports whether tokens are verified remotely against Supabase Auth.
func (c *Config) UsesSupabaseProvider() bool {
	return c.IdentityProvider == ProviderSupabase
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
