package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	CORSOrigins string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// StorageDriver selects the KV backend: memory, postgres, sqlite or redis.
	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CacheDriver is "none" or "redis".
	CacheDriver string
	CacheTTL    time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-key-change-in-production"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "performance_tracker"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "tracker.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CacheDriver: strings.ToLower(getEnv("CACHE_DRIVER", "none")),
		CacheTTL:    getEnvDuration("CACHE_TTL", time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile:   getEnv("LOG_FILE", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(getEnv(key, ""))
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, defaultValue)
		return defaultValue
	}
	return i
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := strings.TrimSpace(getEnv(key, ""))
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}
