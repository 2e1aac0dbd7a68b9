package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// Proxies whose X-Forwarded-For is believed; empty trusts none.
	TrustedProxies    []string `mapstructure:"TRUSTED_PROXIES"`

	// Backing store.
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Firebase project (Firestore, Auth, Storage).
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseBucket          string `mapstructure:"FIREBASE_BUCKET"`

	// Media storage.
	StorageDriver       string `mapstructure:"STORAGE_DRIVER"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	S3Bucket            string `mapstructure:"S3_BUCKET"`
	AWSRegion           string `mapstructure:"AWS_REGION"`

	// Redis configuration.
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB     int           `mapstructure:"REDIS_QUEUE_DB"`
	CategoryCacheTTL time.Duration `mapstructure:"CATEGORY_CACHE_TTL"`

	// Sharing and onboarding.
	PublicBaseURL    string `mapstructure:"PUBLIC_BASE_URL"`
	SiteName         string `mapstructure:"SITE_NAME"`
	EnforceRateOrder bool   `mapstructure:"ENFORCE_RATE_ORDER"`

	// IP geolocation endpoint used for zipcode hints; %s is the client IP.
	GeoLookupURL string `mapstructure:"GEO_LOOKUP_URL"`
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
	viper.SetDefault("TRUSTED_PROXIES", []string{})
	viper.SetDefault("STORE_DRIVER", "firestore")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "doitto")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("FIREBASE_BUCKET", "")
	viper.SetDefault("STORAGE_DRIVER", "firebase")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("CATEGORY_CACHE_TTL", "10m")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8100")
	viper.SetDefault("SITE_NAME", "Do it To")
	viper.SetDefault("ENFORCE_RATE_ORDER", false)
	viper.SetDefault("GEO_LOOKUP_URL", "https://ipapi.co/%s/json/")

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
