package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	JWTTTLHours       int    `mapstructure:"JWT_TTL_HOURS"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Discovery.
	DefaultRadiusMiles     float64 `mapstructure:"DEFAULT_RADIUS_MILES"`
	HomeCacheTTLSeconds    int     `mapstructure:"HOME_CACHE_TTL_SECONDS"`
	LiveMaxDurationMinutes int     `mapstructure:"LIVE_MAX_DURATION_MINUTES"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Image storage: "s3" or "cloudinary".
	ImageStore          string `mapstructure:"IMAGE_STORE"`
	S3Region            string `mapstructure:"AWS_S3_REGION"`
	S3Bucket            string `mapstructure:"AWS_S3_BUCKET_NAME"`
	S3AccessKeyID       string `mapstructure:"AWS_S3_IAM_ACCESS_KEY"`
	S3SecretAccessKey   string `mapstructure:"AWS_S3_IAM_SECRET_ACCESS_KEY"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Google Places address autocomplete.
	GoogleAPIKey          string `mapstructure:"GOOGLE_API_KEY"`
	GoogleAutocompleteURL string `mapstructure:"GOOGLE_AUTOCOMPLETE_URL"`
}

var AppConfig Config

func LoadConfig() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "curbcompanion")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL_HOURS", 720)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("DEFAULT_RADIUS_MILES", 50.0)
	v.SetDefault("HOME_CACHE_TTL_SECONDS", 60)
	v.SetDefault("LIVE_MAX_DURATION_MINUTES", 0)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("IMAGE_STORE", "s3")
	v.SetDefault("AWS_S3_REGION", "us-east-1")
	v.SetDefault("AWS_S3_BUCKET_NAME", "")
	v.SetDefault("AWS_S3_IAM_ACCESS_KEY", "")
	v.SetDefault("AWS_S3_IAM_SECRET_ACCESS_KEY", "")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("GOOGLE_AUTOCOMPLETE_URL", "https://maps.googleapis.com/maps/api/place/autocomplete/json")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// HomeCacheTTL returns the lifetime of cached home sections.
func HomeCacheTTL() time.Duration {
	return time.Duration(AppConfig.HomeCacheTTLSeconds) * time.Second
}

// LiveMaxDuration returns how long a live session may run before it is ended
// automatically. Zero disables expiry.
func LiveMaxDuration() time.Duration {
	return time.Duration(AppConfig.LiveMaxDurationMinutes) * time.Minute
}

// TokenTTL returns the lifetime of issued access tokens.
func TokenTTL() time.Duration {
	return time.Duration(AppConfig.JWTTTLHours) * time.Hour
}
