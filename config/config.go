package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (draft snapshots only).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`

	// Backend collaborator base URLs.
	SchedulingAPIURL  string `mapstructure:"SCHEDULING_API_URL"`
	SuggestionAPIURL  string `mapstructure:"SUGGESTION_API_URL"`
	AppointmentAPIURL string `mapstructure:"APPOINTMENT_API_URL"`

	// Tuning.
	HTTPTimeoutSec    int `mapstructure:"HTTP_TIMEOUT_SEC"`
	SuggestDebounceMs int `mapstructure:"SUGGEST_DEBOUNCE_MS"`
	DraftTTLMin       int `mapstructure:"DRAFT_TTL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DRAFT_DB", 0)
	viper.SetDefault("SCHEDULING_API_URL", "http://localhost:8081")
	viper.SetDefault("SUGGESTION_API_URL", "http://localhost:8082")
	viper.SetDefault("APPOINTMENT_API_URL", "http://localhost:8083")
	viper.SetDefault("HTTP_TIMEOUT_SEC", 10)
	viper.SetDefault("SUGGEST_DEBOUNCE_MS", 400)
	viper.SetDefault("DRAFT_TTL_MIN", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
