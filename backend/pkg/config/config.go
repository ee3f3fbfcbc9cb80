package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	apperrors "party-planner/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Port     string
	Env      string
	LogLevel string
	Timezone string

	// AI
	LiteLLMURL     string
	ModelID        string
	APIKey         string
	LLMTemperature float64
	LLMMaxTokens   int

	// Planning
	PlanTimeout    time.Duration
	KnowledgeLimit int

	// Neo4j (optional: an empty URI disables knowledge search and the plan archive)
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Discord
	DiscordBotToken      string
	DiscordCommandPrefix string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", ""),
		Timezone:             getEnv("TIMEZONE", "UTC"),
		LiteLLMURL:           getEnv("LITELLM_URL", "http://localhost:4000"),
		ModelID:              getEnv("MODEL_ID", "gpt-4o-mini"),
		APIKey:               getEnv("OPENROUTER_API_KEY", getEnv("OPENAI_API_KEY", "")),
		LLMTemperature:       getEnvFloat("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:         getEnvInt("LLM_MAX_TOKENS", 2000),
		PlanTimeout:          time.Duration(getEnvInt("PLAN_TIMEOUT_SECONDS", 120)) * time.Second,
		KnowledgeLimit:       getEnvInt("KNOWLEDGE_LIMIT", 5),
		Neo4jURI:             getEnv("NEO4J_URI", ""),
		Neo4jUser:            getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:        getEnv("NEO4J_PASSWORD", ""),
		DiscordBotToken:      getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordCommandPrefix: getEnv("DISCORD_COMMAND_PREFIX", "!plan"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.LiteLLMURL == "" {
		return apperrors.NewConfigMissingRequired("LITELLM_URL")
	}
	if c.ModelID == "" {
		return apperrors.NewConfigMissingRequired("MODEL_ID")
	}
	if c.PlanTimeout <= 0 {
		return apperrors.NewConfigValidationFailed("PLAN_TIMEOUT_SECONDS", "must be positive")
	}
	if c.KnowledgeLimit < 0 {
		return apperrors.NewConfigValidationFailed("KNOWLEDGE_LIMIT", "must not be negative")
	}
	if c.Neo4jURI != "" && c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return apperrors.NewConfigValidationFailed("TIMEZONE", err.Error())
	}
	// API key and Discord token are optional for development
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GraphEnabled reports whether a Neo4j connection is configured
func (c *Config) GraphEnabled() bool {
	return c.Neo4jURI != ""
}

// Location returns the configured display timezone, UTC when unset or invalid
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
