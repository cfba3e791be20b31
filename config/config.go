// Package config loads the application configuration from environment
// variables. Every setting has a development-friendly default so the server
// can start locally with nothing but a store available.
package config

import (
	"os"
	"strconv"
	"time"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendDynamo = "dynamo"
	BackendFDB    = "fdb"
)

// Auth mode names accepted in AUTH_MODE.
const (
	AuthModeStatic  = "static"
	AuthModeCognito = "cognito"
)

// Config holds all configuration for the application.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int
	// StoreBackend selects the persistence layer: "dynamo" or "fdb".
	StoreBackend string
	// DynamoTable is the DynamoDB table holding reviews.
	DynamoTable string
	// DynamoEndpoint overrides the DynamoDB endpoint URL. Empty means the
	// real AWS endpoint for the configured region; set it to point at a
	// local DynamoDB.
	DynamoEndpoint string
	// AWSRegion is used for both DynamoDB and the translation service.
	AWSRegion string
	// FDBClusterFile is the path to the fdb.cluster file. Empty uses the
	// platform default.
	FDBClusterFile string
	// TranslationTTL is how long a cached translation stays servable.
	TranslationTTL time.Duration
	// TranslateRPMLimit caps calls to the translation service per minute.
	// Zero disables the limiter.
	TranslateRPMLimit int
	// AuthMode selects token verification: "static" (shared HMAC secret,
	// with a local token mint) or "cognito" (JWKS of a Cognito user pool).
	AuthMode string
	// AuthRegion is the region of the Cognito user pool.
	AuthRegion string
	// AuthUserPoolID is the Cognito user pool whose tokens are accepted.
	AuthUserPoolID string
	// JWTSecret signs and verifies tokens in static mode.
	JWTSecret string
	// AdminAPIKey guards the local token mint. Empty disables minting.
	AdminAPIKey string
	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string
}

// NewConfig creates and returns a new Config instance, populating it from
// environment variables or using default values.
func NewConfig() *Config {
	return &Config{
		Port:              getEnvAsInt("PORT", 8080),
		StoreBackend:      getEnv("STORE_BACKEND", BackendDynamo),
		DynamoTable:       getEnv("DYNAMO_TABLE", "movie-reviews"),
		DynamoEndpoint:    getEnv("DYNAMO_ENDPOINT", ""),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		FDBClusterFile:    getEnv("FDB_CLUSTER_FILE", ""),
		TranslationTTL:    time.Duration(getEnvAsInt("TRANSLATION_TTL_SECONDS", 86400)) * time.Second,
		TranslateRPMLimit: getEnvAsInt("TRANSLATE_RPM_LIMIT", 0),
		AuthMode:          getEnv("AUTH_MODE", AuthModeStatic),
		AuthRegion:        getEnv("AUTH_REGION", ""),
		AuthUserPoolID:    getEnv("AUTH_USER_POOL_ID", ""),
		JWTSecret:         getEnv("JWT_SECRET", "a-string-secret-at-least-256-bits-long"),
		AdminAPIKey:       getEnv("ADMIN_API_KEY", ""),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
	}
}

// getEnv reads an environment variable, returning the fallback when the
// variable is unset or empty.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt parses an environment variable as an integer.
// If the environment variable is not set, not a valid integer, or is empty,
// it returns the provided fallback value.
func getEnvAsInt(key string, fallback int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return fallback
}
