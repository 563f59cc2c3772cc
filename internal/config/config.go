package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Supabase     SupabaseConfig     `yaml:"supabase"`
	Portal       PortalConfig       `yaml:"portal"`
	Registration RegistrationConfig `yaml:"registration"`
	Contact      ContactConfig      `yaml:"contact"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// RedisConfig holds the token storage connection. An empty Addr selects the
// in-memory storage (single instance only).
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// SupabaseConfig holds the hosted auth backend settings.
type SupabaseConfig struct {
	URL            string        `yaml:"url"              env:"SUPABASE_URL"              env-required:"true"`
	AnonKey        string        `yaml:"anon_key"         env:"SUPABASE_ANON_KEY"         env-required:"true"`
	ServiceRoleKey string        `yaml:"service_role_key" env:"SUPABASE_SERVICE_ROLE_KEY" env-required:"true"`
	JWTSecret      string        `yaml:"jwt_secret"       env:"SUPABASE_JWT_SECRET"       env-required:"true"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"     env:"SUPABASE_HTTP_TIMEOUT"     env-default:"10s"`
}

// PortalConfig holds per-browser client settings.
type PortalConfig struct {
	CookieName         string        `yaml:"cookie_name"           env:"PORTAL_COOKIE_NAME"           env-default:"portal_sid"`
	CookieSecure       bool          `yaml:"cookie_secure"         env:"PORTAL_COOKIE_SECURE"         env-default:"true"`
	StorageKey         string        `yaml:"storage_key"           env:"PORTAL_STORAGE_KEY"           env-default:"sb-auth-token"`
	SessionTTL         time.Duration `yaml:"session_ttl"           env:"PORTAL_SESSION_TTL"           env-default:"720h"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"          env:"PORTAL_IDLE_TIMEOUT"          env-default:"30m"`
	SweepInterval      time.Duration `yaml:"sweep_interval"        env:"PORTAL_SWEEP_INTERVAL"        env-default:"1m"`
	RefreshLeeway      time.Duration `yaml:"refresh_leeway"        env:"PORTAL_REFRESH_LEEWAY"        env-default:"1m"`
	StatusStaleAfter   time.Duration `yaml:"status_stale_after"    env:"PORTAL_STATUS_STALE_AFTER"    env-default:"10m"`
	ResolveTimeout     time.Duration `yaml:"resolve_timeout"       env:"PORTAL_RESOLVE_TIMEOUT"       env-default:"5s"`
	DeletionConfirmTTL time.Duration `yaml:"deletion_confirm_ttl"  env:"PORTAL_DELETION_CONFIRM_TTL"  env-default:"2m"`
	EventBufferSize    int           `yaml:"event_buffer_size"     env:"PORTAL_EVENT_BUFFER_SIZE"     env-default:"16"`
}

// RegistrationConfig holds investor registration rules.
type RegistrationConfig struct {
	RequirePreference bool `yaml:"require_preference" env:"REGISTRATION_REQUIRE_PREFERENCE" env-default:"false"`
}

// ContactConfig holds contact form settings.
type ContactConfig struct {
	RetentionDays int `yaml:"retention_days" env:"CONTACT_RETENTION_DAYS" env-default:"365"`
}

// RateLimitConfig holds per-IP limits for abuse-prone endpoints.
type RateLimitConfig struct {
	SignInPerMinute   int `yaml:"sign_in_per_minute"   env:"RATE_LIMIT_SIGN_IN"   env-default:"10"`
	RegisterPerMinute int `yaml:"register_per_minute"  env:"RATE_LIMIT_REGISTER"  env-default:"5"`
	ContactPerMinute  int `yaml:"contact_per_minute"   env:"RATE_LIMIT_CONTACT"   env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthURL returns the GoTrue base URL of the project.
func (c SupabaseConfig) AuthURL() string {
	return strings.TrimRight(c.URL, "/") + "/auth/v1"
}
