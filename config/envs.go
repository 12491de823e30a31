package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the maze service's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	RedisAddr       string // Address of the Redis cache
	RedisPassword   string // Password for the Redis cache
	CacheTTLSeconds int    // Lifetime of cached mazes
	DBHost          string // Hostname or IP address for the database
	DBPort          int    // Port number for the database
	DBUser          string // Username for the database
	DBPassword      string // Password for the database
	DBName          string // Name of the database
	MaxDimension    int    // Largest width or height the API will generate
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
}

// LoadEnvs initializes and returns the service configuration.
// It loads environment variables from a .env file when one is present.
// Redis and MongoDB are optional; once DB_HOST is set the remaining database
// and JWT variables become mandatory.
func LoadEnvs() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg := Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		CacheTTLSeconds: getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 3600),
		DBHost:          getEnvWithDefault("DB_HOST", ""),
		MaxDimension:    getEnvAsIntWithDefault("MAX_DIMENSION", 200),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
	}

	if cfg.DBHost != "" {
		cfg.DBPort = mustGetEnvAsInt("DB_PORT")
		cfg.DBUser = mustGetEnv("DB_USER")
		cfg.DBPassword = mustGetEnv("DB_PASS")
		cfg.DBName = mustGetEnv("DB_NAME")
		cfg.JWTSecret = mustGetEnv("JWT_SECRET")
		cfg.JWTIssuer = getEnvWithDefault("JWT_ISSUER", "amazeing")
	}

	return cfg
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers; unparsable values fall back to the default.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return parsed
}
