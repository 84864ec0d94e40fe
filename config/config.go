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

	// Redis configuration (idempotency-key store).
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisIdempotencyDB int    `mapstructure:"REDIS_IDEMPOTENCY_DB"`

	// Calendar gateway. Credentials come either from a service-account file
	// or from the raw JSON payload; the payload is parsed strictly, never
	// evaluated.
	CalendarID            string `mapstructure:"CALENDAR_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleServiceAccount  string `mapstructure:"GOOGLE_SERVICE_ACCOUNT"`
	GatewayTimeoutSecs    int    `mapstructure:"GATEWAY_TIMEOUT_SECS"`

	// Scheduling.
	OpeningHours        string `mapstructure:"OPENING_HOURS"`
	SlotDurationMinutes int    `mapstructure:"SLOT_DURATION_MINUTES"`
	DefaultTimezone     string `mapstructure:"DEFAULT_TIMEZONE"`
	LookaheadDays       int    `mapstructure:"LOOKAHEAD_DAYS"`
	NextFreeCount       int    `mapstructure:"NEXT_FREE_COUNT"`
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
	viper.SetDefault("REDIS_IDEMPOTENCY_DB", 0)
	viper.SetDefault("GATEWAY_TIMEOUT_SECS", 10)
	viper.SetDefault("OPENING_HOURS", "mon-fri=08:00-18:00")
	viper.SetDefault("SLOT_DURATION_MINUTES", 30)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("LOOKAHEAD_DAYS", 14)
	viper.SetDefault("NEXT_FREE_COUNT", 3)

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
