package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTokenCacheDB    int    `mapstructure:"REDIS_TOKEN_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Google Calendar OAuth app credentials.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`

	// Meta Graph API (whatsapp / instagram / messenger senders).
	GraphAPIBaseURL    string `mapstructure:"GRAPH_API_BASE_URL"`
	GraphAccessToken   string `mapstructure:"GRAPH_ACCESS_TOKEN"`
	GraphSenderID      string `mapstructure:"GRAPH_SENDER_ID"`
	WebhookVerifyToken string `mapstructure:"WEBHOOK_VERIFY_TOKEN"`

	// Firebase service account file for FCM push.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Scheduling defaults applied when an agent leaves a field blank.
	DefaultMeetingDuration int    `mapstructure:"DEFAULT_MEETING_DURATION"`
	DefaultTimezone        string `mapstructure:"DEFAULT_TIMEZONE"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TOKEN_CACHE_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GRAPH_API_BASE_URL", "https://graph.facebook.com/v19.0")
	viper.SetDefault("DEFAULT_MEETING_DURATION", 30)
	viper.SetDefault("DEFAULT_TIMEZONE", "UTC")

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
