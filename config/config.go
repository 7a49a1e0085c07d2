package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for all environment variables read by LoadConfig.
// RECIPES_DATABASE__HOST maps to database.host.
const EnvPrefix = "RECIPES_"

// Config holds all configuration for the application
type Config struct {
	Env      Environment    `koanf:"-"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Storage  StorageConfig  `koanf:"storage"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Host               string        `koanf:"host"`
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout"`
	WriteTimeout       time.Duration `koanf:"write_timeout"`
	IdleTimeout        time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
	CORSAllowedOrigins string        `koanf:"cors_allowed_origins"`
}

// AllowedOrigins splits the comma separated CORS origin list
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            string        `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// DSN builds a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	URL      string `koanf:"url"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Enabled reports whether any Redis endpoint is configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret" validate:"required,min=16"`
	TokenTTL  time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

type StorageConfig struct {
	BucketName string        `koanf:"bucket_name"`
	Region     string        `koanf:"region"`
	PublicURL  string        `koanf:"public_url"`
	PresignTTL time.Duration `koanf:"presign_ttl"`
}

// Enabled reports whether recipe image uploads can be presigned
func (s StorageConfig) Enabled() bool {
	return s.BucketName != ""
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

// secretKeys maps Docker secret file names to config keys. A secret file wins
// over the environment when both are present.
var secretKeys = map[string]string{
	"db_user":        "database.user",
	"db_password":    "database.password",
	"jwt_secret":     "auth.jwt_secret",
	"redis_password": "redis.password",
	"redis_url":      "redis.url",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host":                 "",
		"server.port":                 "8080",
		"server.read_timeout":         "15s",
		"server.write_timeout":        "15s",
		"server.idle_timeout":         "60s",
		"server.shutdown_timeout":     "10s",
		"server.cors_allowed_origins": "http://localhost:5173",
		"database.host":               "localhost",
		"database.port":               "5432",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     25,
		"database.conn_max_lifetime":  "5m",
		"auth.token_ttl":              "24h",
		"storage.presign_ttl":         "15m",
		"log.level":                   "info",
	}
}

// LoadConfig builds a Config from defaults, RECIPES_* environment variables
// and, outside CI, Docker secrets found in SECRETS_DIR.
func LoadConfig() (*Config, error) {
	envName := GetEnvironment()
	k := koanf.New(".")

	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if envName != CI {
		for name, key := range secretKeys {
			if value := readSecret(name); value != "" {
				if err := k.Set(key, value); err != nil {
					return nil, fmt.Errorf("failed to apply secret %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Env = envName
	if envName == Development {
		cfg.Log.Pretty = true
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks the struct tags on cfg
func ValidateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
