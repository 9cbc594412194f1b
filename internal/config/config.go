package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BlobBackendCloudinary = "cloudinary"
	BlobBackendS3         = "s3"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cloudinary CloudinaryConfig
	S3         S3Config
	Gemini     GeminiConfig
	Storage    StorageConfig
	Pipeline   PipelineConfig
	Log        LogConfig
	Sweeper    SweeperConfig
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Env  string
	// ShutdownTimeout bounds how long in-flight requests may drain on exit.
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string `validate:"required_if=Enabled true"`
	Port     string
	User     string
	Password string
	DBName   string `validate:"required_if=Enabled true"`
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLExpiry time.Duration
}

type GeminiConfig struct {
	APIKey string `validate:"required"`
	Model  string `validate:"required"`
}

type StorageConfig struct {
	UploadPath  string `validate:"required"`
	MaxFileSize int64  `validate:"gt=0"`
	Backend     string `validate:"oneof=cloudinary s3"`
	Folder      string `validate:"required"`
}

// PipelineConfig bounds every outbound call made while serving a request.
type PipelineConfig struct {
	UploadTimeout     time.Duration `validate:"gt=0"`
	FetchTimeout      time.Duration `validate:"gt=0"`
	CompletionTimeout time.Duration `validate:"gt=0"`
	MaxRetries        int           `validate:"gte=0,lte=3"`
	RetryDelay        time.Duration `validate:"gte=0"`
	SchemaValidation  bool
}

type LogConfig struct {
	Path       string `validate:"required"`
	Level      string `validate:"oneof=DEBUG INFO WARN ERROR"`
	MaxSizeMB  int    `validate:"gt=0"`
	MaxBackups int    `validate:"gte=0"`
	MaxAgeDays int    `validate:"gte=0"`
}

type SweeperConfig struct {
	Interval time.Duration `validate:"gt=0"`
	MaxAge   time.Duration `validate:"gt=0"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("ENV", "development"),

			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_forge"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    getEnv("S3_BUCKET", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			UseSSL:    getEnvAsBool("S3_USE_SSL", true),
			URLExpiry: getEnvAsDuration("S3_URL_EXPIRY", "1h"),
		},
		Gemini: GeminiConfig{
			// GoogleGenAI is the variable name the service has always read.
			APIKey: getEnv("GoogleGenAI", getEnv("GEMINI_API_KEY", "")),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./files"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			Backend:     strings.ToLower(getEnv("BLOB_BACKEND", BlobBackendCloudinary)),
			Folder:      getEnv("BLOB_FOLDER", "resumes"),
		},
		Pipeline: PipelineConfig{
			UploadTimeout:     getEnvAsDuration("UPLOAD_TIMEOUT", "60s"),
			FetchTimeout:      getEnvAsDuration("FETCH_TIMEOUT", "30s"),
			CompletionTimeout: getEnvAsDuration("COMPLETION_TIMEOUT", "120s"),
			MaxRetries:        getEnvAsInt("MAX_RETRIES", 1),
			RetryDelay:        getEnvAsDuration("RETRY_DELAY", "1s"),
			SchemaValidation:  getEnvAsBool("SCHEMA_VALIDATION", true),
		},
		Log: LogConfig{
			Path:       getEnv("LOG_PATH", "./logs/resume-forge.log"),
			Level:      strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
		Sweeper: SweeperConfig{
			Interval: getEnvAsDuration("SWEEP_INTERVAL", "10m"),
			MaxAge:   getEnvAsDuration("SWEEP_MAX_AGE", "1h"),
		},
	}
}

// Validate checks field constraints and the credentials required by the
// selected blob backend. Secret values never appear in the returned error.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.Storage.Backend {
	case BlobBackendCloudinary:
		if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
			return fmt.Errorf("invalid configuration: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
		}
	case BlobBackendS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("invalid configuration: S3_ENDPOINT, S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required")
		}
	}

	if worst := c.Pipeline.WorstCase(); c.Sweeper.MaxAge <= worst {
		return fmt.Errorf("invalid configuration: SWEEP_MAX_AGE (%s) must exceed the longest possible pipeline run (%s)", c.Sweeper.MaxAge, worst)
	}

	return nil
}

// WorstCase is the longest a single pipeline run can take: every call
// exhausts its deadline on every attempt, with the retry delay in between.
func (p PipelineConfig) WorstCase() time.Duration {
	attempts := time.Duration(p.MaxRetries + 1)
	perAttempt := p.UploadTimeout + p.FetchTimeout + p.CompletionTimeout
	return attempts*perAttempt + time.Duration(p.MaxRetries)*3*p.RetryDelay
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
