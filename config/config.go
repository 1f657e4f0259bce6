// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is the development secret. Validate rejects it when
// operator tokens are in use.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Barcode  BarcodeConfig
	Log      LogConfig

	// invalid lists the variables that were set but could not be parsed.
	invalid []string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
	// RequestTimeout bounds the store calls of one API request.
	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SessionConfig holds the scanning session cache configuration.
type SessionConfig struct {
	// Size is the maximum number of open sessions kept in memory.
	Size int
	// TTL is how long an idle session is kept before it is saved and dropped.
	TTL    time.Duration
	Shards int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	// OperatorTokens selects per-operator JWTs with roles. Without it the
	// API keys guard every request directly.
	OperatorTokens bool
	// APIKeys may exchange an operator id for a token.
	APIKeys        map[string]bool
	JWTSecretKey   string
	AccessTokenTTL time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// UseTransactions needs MongoDB running as a replica set.
	UseTransactions bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// BarcodeConfig holds the scan reconciliation options.
type BarcodeConfig struct {
	MoveScannedLineOnly bool
	PackagePrefix       string
	GroupByPackage      bool
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Lookup returns the value of an environment variable, like os.LookupEnv.
type Lookup func(key string) (string, bool)

// Load reads the configuration from the process environment.
func Load() Config {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the configuration through lookup. Unset, empty and
// unparsable variables take their default; Validate reports the unparsable
// ones.
func LoadFrom(lookup Lookup) Config {
	e := &env{lookup: lookup}
	cfg := Config{
		Server: ServerConfig{
			Port:            e.str("PORT", "8080"),
			RateLimit:       e.int("RATE_LIMIT", 100),
			RateWindow:      e.duration("RATE_WINDOW", time.Minute),
			CORSOrigins:     append([]string{"http://localhost:3000", "http://127.0.0.1:3000"}, e.list("CORS_ORIGINS")...),
			SwaggerUser:     e.str("SWAGGER_USER", ""),
			SwaggerPass:     e.str("SWAGGER_PASS", ""),
			RequestTimeout:  e.duration("REQUEST_TIMEOUT", 10*time.Second),
			ReadTimeout:     e.duration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    e.duration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Size:   e.int("SESSION_CACHE_SIZE", 512),
			TTL:    e.duration("SESSION_TTL", 30*time.Minute),
			Shards: e.int("SESSION_CACHE_SHARDS", 16),
		},
		Auth: AuthConfig{
			Enabled:        e.bool("AUTH_ENABLED", false),
			OperatorTokens: e.bool("AUTH_OPERATOR_TOKENS", true),
			APIKeys:        e.set("API_KEYS"),
			JWTSecretKey:   e.str("JWT_SECRET_KEY", DefaultJWTSecret),
			AccessTokenTTL: e.duration("JWT_ACCESS_TOKEN_TTL", 12*time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            e.str("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   e.str("MONGODB_DATABASE", "picking_service"),
			LogsTTL:                        e.duration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        e.bool("MONGODB_ENABLED", true),
			UseTransactions:                e.bool("MONGODB_USE_TRANSACTIONS", true),
			CircuitBreakerFailureThreshold: e.int("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: e.int("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          e.duration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Barcode: BarcodeConfig{
			MoveScannedLineOnly: e.bool("BARCODE_MOVE_SCANNED_ONLY", false),
			PackagePrefix:       e.str("BARCODE_PACKAGE_PREFIX", "PACK"),
			GroupByPackage:      e.bool("BARCODE_GROUP_BY_PACKAGE", false),
		},
		Log: LogConfig{
			Level:  e.str("LOG_LEVEL", "info"),
			Pretty: e.bool("LOG_PRETTY", false),
		},
	}
	cfg.invalid = e.invalid
	return cfg
}

// Validate reports unparsable variables and settings the service cannot
// run with.
func (c Config) Validate() error {
	var errs []error
	for _, key := range c.invalid {
		errs = append(errs, fmt.Errorf("%s: invalid value", key))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT: must not be empty"))
	}
	if c.Session.Size <= 0 {
		errs = append(errs, errors.New("SESSION_CACHE_SIZE: must be positive"))
	}
	if c.Auth.Enabled && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, errors.New("API_KEYS: required when AUTH_ENABLED is set"))
	}
	if c.Auth.Enabled && c.Auth.OperatorTokens && c.Auth.JWTSecretKey == DefaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET_KEY: the development secret cannot sign operator tokens"))
	}
	if !c.Database.Enabled {
		errs = append(errs, errors.New("MONGODB_ENABLED: the service cannot run without MongoDB"))
	}
	return errors.Join(errs...)
}

type env struct {
	lookup  Lookup
	invalid []string
}

func (e *env) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func parsed[T any](e *env, key string, def T, parse func(string) (T, error)) T {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	out, err := parse(v)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return out
}

func (e *env) int(key string, def int) int {
	return parsed(e, key, def, strconv.Atoi)
}

func (e *env) bool(key string, def bool) bool {
	return parsed(e, key, def, strconv.ParseBool)
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	return parsed(e, key, def, time.ParseDuration)
}

// list splits a comma separated variable, dropping empty items.
func (e *env) list(key string) []string {
	v, ok := e.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (e *env) set(key string) map[string]bool {
	items := e.list(key)
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}
