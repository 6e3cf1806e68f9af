// Package config loads service settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
)

const (
	StoreSpanner = "spanner"
	StoreSQLite  = "sqlite"
)

// Config holds application configuration.
type Config struct {
	HTTPPort  string
	APIPrefix string

	BaseUSSOURL    string
	RedisURL       string
	APIKeyCacheTTL time.Duration
	JWKSCacheTTL   time.Duration

	StoreDriver     string
	SpannerDatabase string
	SQLitePath      string

	DefaultCurrency string
	OwnershipAxis   ownership.Axis
	BusinessScope   ownership.BusinessScope

	PageDefaultLimit int
	PageMaxLimit     int
	PaginationFixed  bool

	NotifyOnWrite   bool
	OutboundTimeout time.Duration
	ShutdownTimeout time.Duration

	LogMode          string
	CORSAllowOrigins []string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		HTTPPort:  getenv("HTTP_PORT", "8080"),
		APIPrefix: "/" + strings.Trim(getenv("API_PREFIX", "/api/v1"), "/"),

		BaseUSSOURL: strings.TrimRight(getenv("BASE_USSO_URL", "https://usso.uln.me"), "/"),
		RedisURL:    getenv("REDIS_URL", ""),

		StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", StoreSpanner)),
		SpannerDatabase: getenv("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/product-catalog-db"),
		SQLitePath:      getenv("SQLITE_PATH", "product-catalog.db"),

		DefaultCurrency: strings.ToUpper(getenv("DEFAULT_CURRENCY", "USD")),

		LogMode:          getenv("LOG_MODE", "production"),
		CORSAllowOrigins: splitList(getenv("CORS_ALLOW_ORIGINS", "*")),
	}

	cfg.APIKeyCacheTTL = durenv("APIKEY_CACHE_TTL", 5*time.Minute, &errs)
	cfg.JWKSCacheTTL = durenv("JWKS_CACHE_TTL", time.Hour, &errs)
	cfg.OutboundTimeout = durenv("OUTBOUND_TIMEOUT", 0, &errs)
	cfg.ShutdownTimeout = durenv("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)
	cfg.PageDefaultLimit = atoienv("PAGE_DEFAULT_LIMIT", 10, &errs)
	cfg.PageMaxLimit = atoienv("PAGE_MAX_LIMIT", 100, &errs)
	cfg.PaginationFixed = boolenv("PAGINATION_FIXED", false, &errs)
	cfg.NotifyOnWrite = boolenv("NOTIFY_ON_WRITE", true, &errs)

	if cfg.StoreDriver != StoreSpanner && cfg.StoreDriver != StoreSQLite {
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", cfg.StoreDriver))
	}

	axis, err := ownership.ParseAxis(getenv("OWNERSHIP_AXIS", string(ownership.AxisBusiness)))
	if err != nil {
		errs = append(errs, fmt.Errorf("OWNERSHIP_AXIS: %w", err))
	}
	cfg.OwnershipAxis = axis

	mode, err := ownership.ParseBusinessScope(getenv("BUSINESS_SCOPE_MODE", string(ownership.BusinessScopeHonor)))
	if err != nil {
		errs = append(errs, fmt.Errorf("BUSINESS_SCOPE_MODE: %w", err))
	}
	cfg.BusinessScope = mode

	if len(cfg.DefaultCurrency) != 3 {
		errs = append(errs, fmt.Errorf("DEFAULT_CURRENCY: %q is not a three-letter code", cfg.DefaultCurrency))
	}
	if cfg.PageDefaultLimit < 1 || cfg.PageMaxLimit < cfg.PageDefaultLimit {
		errs = append(errs, fmt.Errorf("PAGE_DEFAULT_LIMIT/PAGE_MAX_LIMIT: need 1 <= default (%d) <= max (%d)",
			cfg.PageDefaultLimit, cfg.PageMaxLimit))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// JWKSURL is the identity service's key set endpoint.
func (c Config) JWKSURL() string {
	return c.BaseUSSOURL + "/.well-known/jwks.json"
}

// APIKeyVerifyURL is the identity service's API key check endpoint.
func (c Config) APIKeyVerifyURL() string {
	return c.BaseUSSOURL + "/api/sso/v1/apikeys/verify"
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int, errs *[]error) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return n
}

func boolenv(key string, def bool, errs *[]error) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

// durenv accepts Go durations ("1500ms", "2s") and bare numbers of seconds.
func durenv(key string, def time.Duration, errs *[]error) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
