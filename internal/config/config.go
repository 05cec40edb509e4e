package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	Extraction ExtractionConfig
	Validation ValidationConfig
	CORS       CORSConfig
	Email      EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractionConfig holds settings for the external field extraction
// service.
type ExtractionConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	MaxRetries  int    `mapstructure:"max_retries"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ValidationConfig holds validation engine settings.
type ValidationConfig struct {
	// StrictAddressConsistency requires every comparable address
	// candidate to agree; off, the legacy any-two-match rule applies.
	StrictAddressConsistency bool `mapstructure:"strict_address_consistency"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the APPREV_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("APPREV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "apprev")
	v.SetDefault("db.password", "apprev_secret")
	v.SetDefault("db.name", "apprev_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "apprev")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "apprev-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@apprev.io")
	v.SetDefault("email.from_name", "AppRev")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Extraction defaults
	v.SetDefault("extraction.base_url", "")
	v.SetDefault("extraction.api_key", "")
	v.SetDefault("extraction.max_retries", 2)
	v.SetDefault("extraction.timeout_secs", 120)

	// Validation defaults
	v.SetDefault("validation.strict_address_consistency", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "APPREV_SERVER_PORT",
		"server.read_timeout":    "APPREV_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "APPREV_SERVER_WRITE_TIMEOUT",
		"server.environment":     "APPREV_SERVER_ENVIRONMENT",
		"db.host":                "APPREV_DB_HOST",
		"db.port":                "APPREV_DB_PORT",
		"db.user":                "APPREV_DB_USER",
		"db.password":            "APPREV_DB_PASSWORD",
		"db.name":                "APPREV_DB_NAME",
		"db.sslmode":             "APPREV_DB_SSLMODE",
		"db.max_open":            "APPREV_DB_MAX_OPEN",
		"db.max_idle":            "APPREV_DB_MAX_IDLE",
		"jwt.secret":             "APPREV_JWT_SECRET",
		"jwt.access_expiry":      "APPREV_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":     "APPREV_JWT_REFRESH_EXPIRY",
		"jwt.issuer":             "APPREV_JWT_ISSUER",
		"s3.region":              "APPREV_S3_REGION",
		"s3.bucket":              "APPREV_S3_BUCKET",
		"s3.endpoint":            "APPREV_S3_ENDPOINT",
		"s3.access_key":          "APPREV_S3_ACCESS_KEY",
		"s3.secret_key":          "APPREV_S3_SECRET_KEY",
		"s3.max_file_size_mb":    "APPREV_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":      "APPREV_S3_PRESIGN_EXPIRY",
		"log.level":              "APPREV_LOG_LEVEL",
		"log.format":             "APPREV_LOG_FORMAT",
		"cors.allowed_origins":   "APPREV_CORS_ALLOWED_ORIGINS",
		"extraction.base_url":    "APPREV_EXTRACTION_BASE_URL",
		"extraction.api_key":     "APPREV_EXTRACTION_API_KEY",
		"extraction.max_retries": "APPREV_EXTRACTION_MAX_RETRIES",
		"extraction.timeout_secs": "APPREV_EXTRACTION_TIMEOUT_SECS",
		"validation.strict_address_consistency": "APPREV_VALIDATION_STRICT_ADDRESS_CONSISTENCY",
		"email.provider":     "APPREV_EMAIL_PROVIDER",
		"email.region":       "APPREV_EMAIL_REGION",
		"email.from_address": "APPREV_EMAIL_FROM_ADDRESS",
		"email.from_name":    "APPREV_EMAIL_FROM_NAME",
		"email.frontend_url": "APPREV_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if APPREV_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("APPREV_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extraction = ExtractionConfig{
		BaseURL:     v.GetString("extraction.base_url"),
		APIKey:      v.GetString("extraction.api_key"),
		MaxRetries:  v.GetInt("extraction.max_retries"),
		TimeoutSecs: v.GetInt("extraction.timeout_secs"),
	}

	cfg.Validation = ValidationConfig{
		StrictAddressConsistency: v.GetBool("validation.strict_address_consistency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}
