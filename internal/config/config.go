package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Storage  StorageConfig
	Export   ExportConfig
}

// DatabaseConfig holds database configuration. An empty URL keeps export records in memory.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Backend         string // none, s3 or minio
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string
	UseSSL          bool
	URLExpiry       time.Duration
}

// ExportConfig holds rendering settings for exported files
type ExportConfig struct {
	CSVPrecision int
	PlotWidth    int
	PlotHeight   int
}

var keys = []string{
	"DATABASE_URL",
	"PORT",
	"ENVIRONMENT",
	"LOG_LEVEL",
	"ALLOWED_ORIGINS",
	"STORAGE_BACKEND",
	"AWS_REGION",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"S3_BUCKET",
	"S3_ENDPOINT",
	"MINIO_USE_SSL",
	"EXPORT_URL_EXPIRY",
	"CSV_PRECISION",
	"PLOT_WIDTH",
	"PLOT_HEIGHT",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("STORAGE_BACKEND", "none")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "coil-exports")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("EXPORT_URL_EXPIRY", "15m")
	v.SetDefault("CSV_PRECISION", 3)
	v.SetDefault("PLOT_WIDTH", 800)
	v.SetDefault("PLOT_HEIGHT", 600)

	// Environment variables override .env file values
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// Read .env file (ignore error if file doesn't exist)
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	var config Config
	config.Database.URL = v.GetString("DATABASE_URL")
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = env
	config.Server.LogLevel = v.GetString("LOG_LEVEL")
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.Storage.Backend = strings.ToLower(v.GetString("STORAGE_BACKEND"))
	config.Storage.Region = v.GetString("AWS_REGION")
	config.Storage.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.Storage.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.Storage.Bucket = v.GetString("S3_BUCKET")
	config.Storage.Endpoint = v.GetString("S3_ENDPOINT")
	config.Storage.UseSSL = v.GetBool("MINIO_USE_SSL")
	config.Storage.URLExpiry = v.GetDuration("EXPORT_URL_EXPIRY")
	config.Export.CSVPrecision = v.GetInt("CSV_PRECISION")
	config.Export.PlotWidth = v.GetInt("PLOT_WIDTH")
	config.Export.PlotHeight = v.GetInt("PLOT_HEIGHT")

	log.Debug().
		Str("environment", env).
		Str("storage_backend", config.Storage.Backend).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Bool("database", config.Database.URL != "").
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
