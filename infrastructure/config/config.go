package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Cache backend selection values
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EmailIndex    string // GSI1 - email lookups and itinerary-by-ID lookups
	PublicIndex   string // GSI2 - public itinerary listing

	// Lambda configuration
	IsLambda bool

	// Cache configuration
	CacheBackend         string // redis, memory or none
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	CacheConnectAttempts int
	UserTTL              time.Duration
	ItineraryTTL         time.Duration
	UserListTTL          time.Duration
	PublicListTTL        time.Duration

	// Logging
	LogLevel string

	// Authentication
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	TokenExpiry   time.Duration
	RefreshExpiry time.Duration

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "wayfarer")),
		EmailIndex:    getEnv("EMAIL_INDEX_NAME", "GSI1"),
		PublicIndex:   getEnv("PUBLIC_INDEX_NAME", "GSI2"),

		// Lambda configuration
		IsLambda: getEnvBool("IS_LAMBDA", false) || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		// Cache configuration
		CacheBackend:         getEnv("CACHE_BACKEND", CacheBackendRedis),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		CacheConnectAttempts: getEnvInt("CACHE_CONNECT_ATTEMPTS", 5),
		UserTTL:              getEnvSeconds("CACHE_USER_TTL", 3600),
		ItineraryTTL:         getEnvSeconds("CACHE_ITINERARY_TTL", 1800),
		UserListTTL:          getEnvSeconds("CACHE_USER_LIST_TTL", 600),
		PublicListTTL:        getEnvSeconds("CACHE_PUBLIC_LIST_TTL", 300),

		// Authentication
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "wayfarer"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "wayfarer-api"),
		TokenExpiry:   getEnvSeconds("TOKEN_EXPIRY", 900),
		RefreshExpiry: getEnvSeconds("REFRESH_EXPIRY", 604800),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackendRedis, CacheBackendMemory, CacheBackendNone:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of redis, memory, none; got %q", c.CacheBackend)
	}

	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
		if c.CacheBackend == CacheBackendRedis && c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvSeconds reads an integer number of seconds as a duration
func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}
