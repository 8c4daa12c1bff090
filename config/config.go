// Package config loads the deployment environment of the server and the command line tool.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kpango/glg"

	"github.com/rking788/warmind-advisors/bungie"
)

// EnvConfig is the environment configuration for a specific deployment.
type EnvConfig struct {
	BungieAPIKey  string
	BungieBaseURL string
	DatabaseURL   string
	RedisURL      string
	Port          string
	Environment   string
	LogLevel      string
	LogFilePath   string
	SentryDSN     string
	AlexaAppID    string
	SSLCertPath   string
	SSLKeyPath    string

	// LocalClientsPath names a file of local IP addresses to spread Bungie requests over.
	LocalClientsPath string

	MaxClanPages     int
	ClanPageAttempts int
}

// IsProduction reports whether the server should terminate TLS itself.
func (c *EnvConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// BungieConfig is the client configuration for this environment. The transport is left to the
// caller.
func (c *EnvConfig) BungieConfig() bungie.Config {
	return bungie.Config{
		APIKey:           c.BungieAPIKey,
		BaseURL:          c.BungieBaseURL,
		MaxClanPages:     c.MaxClanPages,
		ClanPageAttempts: c.ClanPageAttempts,
	}
}

// Load reads the optional .env style file at path into the process environment and then
// builds the configuration from the environment. Variables already set in the environment
// win over the file.
func Load(path string) *EnvConfig {

	if path != "" {
		if err := godotenv.Load(path); err != nil {
			glg.Warnf("Failed to load the config file %s: %s", path, err.Error())
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *EnvConfig {
	return &EnvConfig{
		BungieAPIKey:     os.Getenv("BUNGIE_API_KEY"),
		BungieBaseURL:    getEnvOrDefault("BUNGIE_URL_BASE", bungie.DefaultBaseURL),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		Port:             getEnvOrDefault("PORT", "8080"),
		Environment:      getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "INFO"),
		LogFilePath:      os.Getenv("LOG_FILE_PATH"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		AlexaAppID:       os.Getenv("ALEXA_APP_ID"),
		SSLCertPath:      os.Getenv("SSL_CERT_PATH"),
		SSLKeyPath:       os.Getenv("SSL_KEY_PATH"),
		LocalClientsPath: os.Getenv("LOCAL_CLIENTS_PATH"),
		MaxClanPages:     getIntEnvOrDefault("MAX_CLAN_PAGES", bungie.DefaultMaxClanPages),
		ClanPageAttempts: getIntEnvOrDefault("CLAN_PAGE_ATTEMPTS", bungie.DefaultClanPageAttempts),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnvOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		glg.Warnf("Ignoring invalid value %q for %s", val, key)
		return defaultVal
	}

	return n
}
