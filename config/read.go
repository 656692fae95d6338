package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/roxydental/roxydental_backend/pkg/constants"
	"github.com/spf13/viper"
)

func ReadConfig(configPath string) (*Config, error) {
	// .env is a convenience for local runs; absence is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)
	v.AddConfigPath("/etc/roxydental")

	setDefaults(v)

	// e.g. ROXYDENTAL_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
		if os.Getenv(constants.EnvPrefix+"_DATABASE_HOST") == "" {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	// Self-service sign-up creates doctors; production must opt in explicitly.
	v.SetDefault("authentication.public_registration", v.GetString("server.environment") != "production")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.timezone", "Asia/Jakarta")
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors.allow_credentials", true)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_minute", 120)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "roxydental")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "Asia/Jakarta")
	v.SetDefault("database.migrations.auto_migrate", false)
	v.SetDefault("database.migrations.seed_catalog", false)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("authentication.jwt.secret", "")
	v.SetDefault("authentication.jwt.issuer", "roxydental-api")
	v.SetDefault("authentication.jwt.audience", "roxydental-client")
	v.SetDefault("authentication.jwt.ttl_hours", 24*7)
	v.SetDefault("authentication.reset_token_ttl_minutes", 30)
	v.SetDefault("authentication.reset_url", "http://localhost:3000/reset-password")
	v.SetDefault("authentication.default_role", "DOKTER")

	v.SetDefault("authorization.enable_audit", true)
	v.SetDefault("authorization.policy_sync_enabled", false)
	v.SetDefault("authorization.health_check_enabled", true)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp.port", 587)

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "ap-southeast-3")

	v.SetDefault("codes.token_byte_length", 32)
	v.SetDefault("codes.url_safe_tokens", true)

	v.SetDefault("password.algorithm", "argon2id")
	v.SetDefault("password.bcrypt_cost", 10)

	v.SetDefault("midtrans.enabled", false)
	v.SetDefault("midtrans.server_key", "")
	v.SetDefault("midtrans.client_key", "")
	v.SetDefault("midtrans.production", false)

	v.SetDefault("ai.service_url", "http://localhost:8000")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", "roxydental-api")
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
}
