package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var loadOnce sync.Once

// AppConfig holds every setting the API reads at startup.
type AppConfig struct {
	AppEnv           string
	Port             string
	DBDriver         string
	DatabaseURL      string
	JWTSecret        string
	JWTExpiresIn     time.Duration
	BaseURL          string
	ClientURL        string
	UploadDir        string
	MaxUploadSize    int64
	CloudinaryURL    string
	EmailDomain      string
	DBHealthSchedule string
	AuthRateLimit    int
}

func load() {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Msg(".env file not found, reading from system environment variables")
		}

		viper.SetDefault("APP_ENV", "development")
		viper.SetDefault("PORT", "5000")
		viper.SetDefault("DB_DRIVER", "postgres")
		viper.SetDefault("JWT_EXPIRES_IN", 7*24*time.Hour)
		viper.SetDefault("BASE_URL", "http://localhost:5000")
		viper.SetDefault("CLIENT_URL", "http://localhost:3000")
		viper.SetDefault("UPLOAD_DIR", "uploads")
		viper.SetDefault("MAX_UPLOAD_SIZE", 5*1024*1024)
		viper.SetDefault("EMAIL_DOMAIN", "@vnrvjiet.in")
		viper.SetDefault("DB_HEALTH_SCHEDULE", "@every 30s")
		viper.SetDefault("AUTH_RATE_LIMIT", 20)
		viper.AutomaticEnv()
	})
}

// Config returns a single raw setting.
func Config(key string) string {
	load()
	return viper.GetString(key)
}

// Load reads the environment (and .env when present) into an AppConfig.
func Load() *AppConfig {
	load()

	cfg := &AppConfig{
		AppEnv:           viper.GetString("APP_ENV"),
		Port:             viper.GetString("PORT"),
		DBDriver:         strings.ToLower(viper.GetString("DB_DRIVER")),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		JWTExpiresIn:     viper.GetDuration("JWT_EXPIRES_IN"),
		BaseURL:          strings.TrimRight(viper.GetString("BASE_URL"), "/"),
		ClientURL:        viper.GetString("CLIENT_URL"),
		UploadDir:        viper.GetString("UPLOAD_DIR"),
		MaxUploadSize:    viper.GetInt64("MAX_UPLOAD_SIZE"),
		CloudinaryURL:    viper.GetString("CLOUDINARY_URL"),
		EmailDomain:      viper.GetString("EMAIL_DOMAIN"),
		DBHealthSchedule: viper.GetString("DB_HEALTH_SCHEDULE"),
		AuthRateLimit:    viper.GetInt("AUTH_RATE_LIMIT"),
	}
	return cfg
}

func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
