package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Mail         MailConfig
	Storage      StorageConfig
	Booking      BookingConfig
	Verification VerificationConfig
}

type AppConfig struct {
	Port          string
	Env           string
	AllowedOrigin string
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	AutoMigrate    bool
	MigrationsPath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// MailConfig selects the outbound email provider: sendgrid, ses or stub.
type MailConfig struct {
	Provider       string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	AWSRegion      string
	PatientCardURL string
}

type StorageConfig struct {
	Bucket        string
	Region        string
	PublicBaseURL string
}

type BookingConfig struct {
	SlotLockTTL         time.Duration
	NotificationTimeout time.Duration
}

type VerificationConfig struct {
	CodeTTL time.Duration
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// The .env file is optional; plain environment variables are enough in containers.
	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("MAIL_PROVIDER", "stub")
	v.SetDefault("MAIL_FROM_NAME", "Clinic")
	v.SetDefault("AWS_REGION", "eu-central-1")
	v.SetDefault("BOOKING_SLOT_LOCK_TTL", "10s")
	v.SetDefault("BOOKING_NOTIFICATION_TIMEOUT", "10s")
	v.SetDefault("VERIFICATION_CODE_TTL", "10m")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Port:          v.GetString("APP_PORT"),
			Env:           v.GetString("APP_ENV"),
			AllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			AutoMigrate:    v.GetBool("DB_AUTO_MIGRATE"),
			MigrationsPath: v.GetString("DB_MIGRATIONS_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: durationOr(v, "JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Mail: MailConfig{
			Provider:       v.GetString("MAIL_PROVIDER"),
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromEmail:      v.GetString("MAIL_FROM_EMAIL"),
			FromName:       v.GetString("MAIL_FROM_NAME"),
			AWSRegion:      v.GetString("AWS_REGION"),
			PatientCardURL: v.GetString("MAIL_PATIENT_CARD_URL"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("AWS_REGION"),
			PublicBaseURL: v.GetString("S3_PUBLIC_BASE_URL"),
		},
		Booking: BookingConfig{
			SlotLockTTL:         durationOr(v, "BOOKING_SLOT_LOCK_TTL", 10*time.Second),
			NotificationTimeout: durationOr(v, "BOOKING_NOTIFICATION_TIMEOUT", 10*time.Second),
		},
		Verification: VerificationConfig{
			CodeTTL: durationOr(v, "VERIFICATION_CODE_TTL", 10*time.Minute),
		},
	}
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
