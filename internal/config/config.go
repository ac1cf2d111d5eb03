package config

import (
	"os"
	"strconv"
)

// Storage backends understood by the server and the seed tool.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Storage
	StorageBackend   string
	DataDir          string // file backend root
	DatabaseURL      string // postgres backend
	TablePrefix      string
	DynamoDBTable    string
	DynamoDBEndpoint string // optional, for DynamoDB Local
	AWSRegion        string
	KeyPrefix        string // namespaces the collection keys inside a shared store
	// Logging
	LogDir      string // empty = stdout only
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StorageBackend:   getEnv("STORAGE_BACKEND", BackendFile),
		DataDir:          getEnv("DATA_DIR", "./data"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		TablePrefix:      tablePrefix,
		DynamoDBTable:    getEnv("DYNAMODB_TABLE", tablePrefix+"notevault_kv"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		KeyPrefix:        getEnv("KEY_PREFIX", "notevault"),
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      getEnvInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
