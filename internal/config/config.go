package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete server configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Auth     AuthConfig     `mapstructure:"auth"     yaml:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"  yaml:"storage"`
	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"          yaml:"address"`
	BodyLimit       string        `mapstructure:"body_limit"       yaml:"body_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"     yaml:"cors_origins"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"       yaml:"url"`
	MaxConns int32  `mapstructure:"max_conns" yaml:"max_conns"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"  yaml:"token_ttl"`
}

type StorageConfig struct {
	Driver     string      `mapstructure:"driver"      yaml:"driver"`
	PublicRoot string      `mapstructure:"public_root" yaml:"public_root"`
	MinIO      MinIOConfig `mapstructure:"minio"       yaml:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"   yaml:"endpoint"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"    yaml:"use_ssl"`
	Bucket    string `mapstructure:"bucket"     yaml:"bucket"`
}

type LogConfig struct {
	Level      string            `mapstructure:"level"       yaml:"level"`
	TimeFormat string            `mapstructure:"time_format" yaml:"time_format"`
	File       string            `mapstructure:"file"        yaml:"file"`
	NoColor    bool              `mapstructure:"no_color"    yaml:"no_color"`
	JSON       bool              `mapstructure:"json"        yaml:"json"`
	NoTerminal bool              `mapstructure:"no_terminal" yaml:"no_terminal"`
	Rotation   LogRotationConfig `mapstructure:"rotation"    yaml:"rotation"`
}

type LogRotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool `mapstructure:"compress"    yaml:"compress"`
}

const (
	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

// Load unmarshals the active viper state (file, env, flags) on top of the defaults.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load against an explicit viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case StorageDriverLocal:
		if c.Storage.PublicRoot == "" {
			return fmt.Errorf("storage.public_root is required for the local driver")
		}
	case StorageDriverMinIO:
		if c.Storage.MinIO.Endpoint == "" || c.Storage.MinIO.Bucket == "" {
			return fmt.Errorf("storage.minio.endpoint and storage.minio.bucket are required for the minio driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}

// Redacted returns a copy with secrets masked, for printing.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.Auth.JWTSecret = mask(c.Auth.JWTSecret)
	c.Storage.MinIO.SecretKey = mask(c.Storage.MinIO.SecretKey)
	c.Database.URL = mask(c.Database.URL)
	return c
}
