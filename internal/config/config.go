package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	APIBaseURL     string        // upstream bookmark API (ex: https://api.sava.app)
	APIToken       string        // opaque bearer credential for the upstream API
	RequestTimeout time.Duration // transport timeout for list/patch/delete
	CreateTimeout  time.Duration // local abandonment deadline for creates (default: 60s)

	RefreshInterval time.Duration // interval to re-fetch the collection (default: 5m)
	RulesFile       string        // path to platforms.yaml (optional, empty = built-in rules only)

	// Redis (optional: empty addr disables the snapshot cache)
	RedisAddr             string
	RedisUser             string
	RedisPassword         string
	RedisPasswordRequired bool
	RedisDB               int
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries (grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedOrigins []string // CORS origins for the view layer (default: localhost dev servers)
	AllowedCIDRS   []string // optional, restrict ops endpoints (diagnostics/refresh) to these IPs/CIDRs
	TrustProxy     bool     // true => trust X-Forwarded-For headers

	// Rate limit on mutation endpoints
	MutationBurst        int
	MutationRefillPerMin int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SAVA_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SAVA_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SAVA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SAVA_PRETTY_LOG", true),

		// Upstream API
		APIBaseURL:     requireEnv("SAVA_API_BASE_URL"),
		APIToken:       getenv("SAVA_API_TOKEN", ""),
		RequestTimeout: mustDuration("SAVA_API_REQUEST_TIMEOUT", 15*time.Second),
		CreateTimeout:  mustDuration("SAVA_API_CREATE_TIMEOUT", 60*time.Second),

		RefreshInterval: mustDuration("SAVA_REFRESH_INTERVAL", 5*time.Minute),
		RulesFile:       getenv("SAVA_RULES_FILE", ""),

		// Redis settings
		RedisAddr:             getenv("SAVA_REDIS_ADDR", ""),
		RedisUser:             getenv("SAVA_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SAVA_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SAVA_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SAVA_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access
		AllowedOrigins: splitAndTrim(getenv("SAVA_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		AllowedCIDRS:   splitAndTrim(getenv("SAVA_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("SAVA_TRUST_PROXY", false),

		// Mutation rate limit
		MutationBurst:        getenvInt("SAVA_MUTATION_BURST", 10),
		MutationRefillPerMin: getenvInt("SAVA_MUTATION_REFILL_PER_MIN", 30),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SAVA_REDIS_PASSWORD is required when SAVA_REDIS_PASSWORD_REQUIRED=true")
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
