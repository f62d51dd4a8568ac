package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port        int    `mapstructure:"port"         validate:"required,numeric,min=1,max=65535"`
	Production  bool   `mapstructure:"production"`
	LogLevel    string `mapstructure:"log_level"    validate:"omitempty,oneof=trace debug info warn error"`
	JWTSecret   string `mapstructure:"jwt_secret"   validate:"required,min=16"`
	TokenExpiry string `mapstructure:"token_expiry"`

	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int    `mapstructure:"port"     validate:"required,numeric,min=1,max=65535"`
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"  validate:"omitempty,oneof=disable require verify-ca verify-full"`
}

const (
	StorageFilesystem = "filesystem"
	StorageS3         = "s3"
)

type StorageConfig struct {
	// Type selects the blob backend: "filesystem" or "s3".
	Type string `mapstructure:"type" validate:"omitempty,oneof=filesystem s3"`

	// UploadDir is the base directory for filesystem uploads. Report images
	// live under {upload_dir}/{reportID}/.
	UploadDir string `mapstructure:"upload_dir"`

	// PublicBaseURL is prepended to stored file paths when building the
	// URLs handed back to clients.
	PublicBaseURL string `mapstructure:"public_base_url"`

	S3 S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	KeyID     string `mapstructure:"key_id"`
	AccessKey string `mapstructure:"access_key"`
	Timeout   string `mapstructure:"timeout"`
}

var Cfg = &AppConfig{}

// Load reads configuration from config.yaml (if present) and the
// environment, applies defaults, and validates the result into Cfg.
func Load() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/report-backend")

	v.SetEnvPrefix("REPORT_BACKEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 3000)
	v.SetDefault("production", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("token_expiry", "24h")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("storage.type", "filesystem")
	v.SetDefault("storage.upload_dir", "./uploads/reports")
	v.SetDefault("storage.public_base_url", "http://localhost:3000/api")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
		// No file is fine, environment and defaults carry the config.
	}

	if err := v.Unmarshal(Cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(Cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	return nil
}
