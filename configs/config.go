package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Weather   WeatherConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	StaticDir      string
	Version        string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
	// OpTimeout bounds a single cache command issued on the request path
	OpTimeout time.Duration
	// Connection monitor
	HealthInterval time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// CacheTTL of zero stores entries without expiration
	CacheTTL           time.Duration
	BreakerFailures    int
	BreakerOpenTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitTier struct {
	Max    int
	Window time.Duration
}

type RateLimitConfig struct {
	General   RateLimitTier
	Weather   RateLimitTier
	Health    RateLimitTier
	KeyPrefix string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cacheTTL, err := getSecondsEnv("CACHE_EXPIRY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", getEnv("PORT", "3000")),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
			StaticDir:      getEnv("STATIC_DIR", "public"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getIntEnv("REDIS_DB", 0),
			PoolSize:       getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns:   getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			MaxRetries:     getIntEnv("REDIS_MAX_RETRIES", 1),
			DialTimeout:    getDurationEnv("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:    getDurationEnv("REDIS_READ_TIMEOUT", time.Second),
			WriteTimeout:   getDurationEnv("REDIS_WRITE_TIMEOUT", time.Second),
			PoolTimeout:    getDurationEnv("REDIS_POOL_TIMEOUT", 2*time.Second),
			IdleTimeout:    getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			OpTimeout:      getDurationEnv("REDIS_OP_TIMEOUT", 500*time.Millisecond),
			HealthInterval: getDurationEnv("REDIS_MONITOR_INTERVAL", 5*time.Second),
			InitialBackoff: getDurationEnv("REDIS_MONITOR_INITIAL_BACKOFF", 500*time.Millisecond),
			MaxBackoff:     getDurationEnv("REDIS_MONITOR_MAX_BACKOFF", 30*time.Second),
		},
		Weather: WeatherConfig{
			BaseURL:            strings.TrimRight(getEnv("WEATHER_API_URL", "https://api.weatherapi.com/v1"), "/"),
			APIKey:             getEnv("WEATHER_API_KEY", ""),
			Timeout:            getDurationEnv("WEATHER_API_TIMEOUT", 10*time.Second),
			CacheTTL:           cacheTTL,
			BreakerFailures:    getIntEnv("WEATHER_BREAKER_FAILURES", 5),
			BreakerOpenTimeout: getDurationEnv("WEATHER_BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			General: RateLimitTier{
				Max:    getIntEnv("RATE_LIMIT_GENERAL_MAX", 100),
				Window: getDurationEnv("RATE_LIMIT_GENERAL_WINDOW", 15*time.Minute),
			},
			Weather: RateLimitTier{
				Max:    getIntEnv("RATE_LIMIT_WEATHER_MAX", 30),
				Window: getDurationEnv("RATE_LIMIT_WEATHER_WINDOW", time.Minute),
			},
			Health: RateLimitTier{
				Max:    getIntEnv("RATE_LIMIT_HEALTH_MAX", 60),
				Window: getDurationEnv("RATE_LIMIT_HEALTH_WINDOW", time.Minute),
			},
			KeyPrefix: getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getSecondsEnv parses a whole number of seconds. Unset means zero.
func getSecondsEnv(key string) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return 0, nil
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a non-negative number of seconds", key, value)
	}
	return time.Duration(secs) * time.Second, nil
}
