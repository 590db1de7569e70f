package config

import (
	"log"

	"github.com/spf13/viper"
)

// CalendarSourceConfig describes one external calendar feed for a host's
// busy intervals. Kind selects the provider implementation ("ics" or "http").
type CalendarSourceConfig struct {
	ID   string `mapstructure:"id"`
	Kind string `mapstructure:"kind"`
	URL  string `mapstructure:"url"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	// Slot resolution settings.
	SlotGranularityMin      int `mapstructure:"SLOT_GRANULARITY_MIN"`
	MaxRangeDays            int `mapstructure:"MAX_RANGE_DAYS"`
	CalendarTimeoutSec      int `mapstructure:"CALENDAR_TIMEOUT_SEC"`
	AvailabilityCacheTTLSec int `mapstructure:"AVAILABILITY_CACHE_TTL_SEC"`

	// External calendar feeds, read from the config file's
	// "calendarSources" list.
	CalendarSources []CalendarSourceConfig `mapstructure:"calendarSources"`
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
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCK_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SLOT_GRANULARITY_MIN", 15)
	viper.SetDefault("MAX_RANGE_DAYS", 186)
	viper.SetDefault("CALENDAR_TIMEOUT_SEC", 5)
	viper.SetDefault("AVAILABILITY_CACHE_TTL_SEC", 60)

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
