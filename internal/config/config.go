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
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Extractor ExtractorConfig
	JobStore  JobStoreConfig
	PDF       PDFConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the local job index.
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

// S3Config holds AWS S3 settings for submitted-document retention.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// ExtractorConfig holds the extraction service collaborator settings.
type ExtractorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// JobStoreConfig holds the job store collaborator settings.
type JobStoreConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PDFConfig holds page geometry settings.
type PDFConfig struct {
	DefaultScale float64 `mapstructure:"default_scale"`
	MaxScale     float64 `mapstructure:"max_scale"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCREVIEW_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCREVIEW")
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
	v.SetDefault("db.user", "docreview")
	v.SetDefault("db.password", "docreview_secret")
	v.SetDefault("db.name", "docreview_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docreview-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)

	// Collaborator defaults
	v.SetDefault("extractor.base_url", "http://localhost:8000")
	v.SetDefault("extractor.timeout", "120s")
	v.SetDefault("jobstore.base_url", "http://localhost:8000")
	v.SetDefault("jobstore.timeout", "30s")

	// PDF defaults
	v.SetDefault("pdf.default_scale", 1.5)
	v.SetDefault("pdf.max_scale", 8.0)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "DOCREVIEW_SERVER_PORT",
		"server.read_timeout":  "DOCREVIEW_SERVER_READ_TIMEOUT",
		"server.write_timeout": "DOCREVIEW_SERVER_WRITE_TIMEOUT",
		"server.environment":   "DOCREVIEW_SERVER_ENVIRONMENT",
		"db.host":              "DOCREVIEW_DB_HOST",
		"db.port":              "DOCREVIEW_DB_PORT",
		"db.user":              "DOCREVIEW_DB_USER",
		"db.password":          "DOCREVIEW_DB_PASSWORD",
		"db.name":              "DOCREVIEW_DB_NAME",
		"db.sslmode":           "DOCREVIEW_DB_SSLMODE",
		"db.max_open":          "DOCREVIEW_DB_MAX_OPEN",
		"db.max_idle":          "DOCREVIEW_DB_MAX_IDLE",
		"s3.region":            "DOCREVIEW_S3_REGION",
		"s3.bucket":            "DOCREVIEW_S3_BUCKET",
		"s3.endpoint":          "DOCREVIEW_S3_ENDPOINT",
		"s3.access_key":        "DOCREVIEW_S3_ACCESS_KEY",
		"s3.secret_key":        "DOCREVIEW_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "DOCREVIEW_S3_MAX_FILE_SIZE_MB",
		"extractor.base_url":   "DOCREVIEW_EXTRACTOR_BASE_URL",
		"extractor.timeout":    "DOCREVIEW_EXTRACTOR_TIMEOUT",
		"jobstore.base_url":    "DOCREVIEW_JOBSTORE_BASE_URL",
		"jobstore.timeout":     "DOCREVIEW_JOBSTORE_TIMEOUT",
		"pdf.default_scale":    "DOCREVIEW_PDF_DEFAULT_SCALE",
		"pdf.max_scale":        "DOCREVIEW_PDF_MAX_SCALE",
		"log.level":            "DOCREVIEW_LOG_LEVEL",
		"log.format":           "DOCREVIEW_LOG_FORMAT",
		"cors.allowed_origins": "DOCREVIEW_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// DOCREVIEW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCREVIEW_SERVER_PORT") == "" {
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
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Extractor = ExtractorConfig{
		BaseURL: v.GetString("extractor.base_url"),
		Timeout: v.GetDuration("extractor.timeout"),
	}
	cfg.JobStore = JobStoreConfig{
		BaseURL: v.GetString("jobstore.base_url"),
		Timeout: v.GetDuration("jobstore.timeout"),
	}
	cfg.PDF = PDFConfig{
		DefaultScale: v.GetFloat64("pdf.default_scale"),
		MaxScale:     v.GetFloat64("pdf.max_scale"),
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

	return cfg, nil
}
