package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment  string             `mapstructure:"environment"`
	LogLevel     string             `mapstructure:"log_level"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Email        EmailConfig        `mapstructure:"email"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Settlement   SettlementConfig   `mapstructure:"settlement"`
	Verification VerificationConfig `mapstructure:"verification"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	Host            string   `mapstructure:"host"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	QueryTimeout    int    `mapstructure:"query_timeout"`
}

type RedisConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	MaxRetries int    `mapstructure:"max_retries"`
	PoolSize   int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	AccessTTL  int    `mapstructure:"access_token_ttl"`
	RefreshTTL int    `mapstructure:"refresh_token_ttl"`
	Issuer     string `mapstructure:"issuer"`
}

type EmailConfig struct {
	Provider  string `mapstructure:"provider"` // "sendgrid", "mailersend", "smtp"
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
	ReplyTo   string `mapstructure:"reply_to"`
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
}

// StorageConfig configures the S3 bucket for proof-of-payment uploads
type StorageConfig struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	MaxUploadBytes  int64  `mapstructure:"max_upload_bytes"`
}

// SettlementConfig configures the maturity settlement worker
type SettlementConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	CronSchedule string `mapstructure:"cron_schedule"`
	BatchSize    int    `mapstructure:"batch_size"`
}

// VerificationConfig configures email verification codes
type VerificationConfig struct {
	CodeTTLMinutes int `mapstructure:"code_ttl_minutes"`
	MaxPerHour     int `mapstructure:"max_per_hour"`
}

// Load reads configuration from config files and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	overrideFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.Database.URL == "" {
		config.Database.URL = fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			config.Database.User,
			config.Database.Password,
			config.Database.Host,
			config.Database.Port,
			config.Database.Name,
			config.Database.SSLMode,
		)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.rate_limit_per_min", 100)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "invest_service")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.max_idle_conns", 25)
	viper.SetDefault("database.conn_max_lifetime", 3600)
	viper.SetDefault("database.query_timeout", 30)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("jwt.access_token_ttl", 604800)   // 7 days
	viper.SetDefault("jwt.refresh_token_ttl", 2592000) // 30 days
	viper.SetDefault("jwt.issuer", "invest_service")

	viper.SetDefault("email.provider", "mailersend")
	viper.SetDefault("email.base_url", "https://api.mailersend.com/v1")
	viper.SetDefault("email.from_email", "noreply@bitfinek.com")
	viper.SetDefault("email.from_name", "Bitfinek")
	viper.SetDefault("email.smtp_port", 587)

	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.bucket", "bitfinek-proofs")
	viper.SetDefault("storage.max_upload_bytes", 10<<20) // 10 MB

	viper.SetDefault("settlement.enabled", true)
	viper.SetDefault("settlement.cron_schedule", "@every 1h")
	viper.SetDefault("settlement.batch_size", 200)

	viper.SetDefault("verification.code_ttl_minutes", 15)
	viper.SetDefault("verification.max_per_hour", 5)
}

func overrideFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			viper.Set("server.port", p)
		}
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		viper.Set("database.url", dbURL)
	}
	if redisURL := os.Getenv("REDIS_HOST"); redisURL != "" {
		viper.Set("redis.host", redisURL)
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		viper.Set("jwt.secret", jwtSecret)
	}
	if emailKey := os.Getenv("EMAIL_API_KEY"); emailKey != "" {
		viper.Set("email.api_key", emailKey)
	}
	if mailersendKey := os.Getenv("MAILERSEND_API_KEY"); mailersendKey != "" {
		viper.Set("email.api_key", mailersendKey)
		viper.Set("email.provider", "mailersend")
	}
	if sendgridKey := os.Getenv("SENDGRID_API_KEY"); sendgridKey != "" {
		viper.Set("email.api_key", sendgridKey)
		viper.Set("email.provider", "sendgrid")
	}
	if accessKey := os.Getenv("AWS_ACCESS_KEY_ID"); accessKey != "" {
		viper.Set("storage.access_key_id", accessKey)
	}
	if secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY"); secretKey != "" {
		viper.Set("storage.secret_access_key", secretKey)
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		viper.Set("storage.bucket", bucket)
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		viper.Set("storage.region", region)
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		var cleaned []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			viper.Set("server.allowed_origins", cleaned)
		}
	}
}

func validate(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if config.Environment == "production" {
		if config.Database.SSLMode == "disable" {
			return fmt.Errorf("database.ssl_mode must not be 'disable' in production")
		}
		if config.Email.APIKey == "" {
			return fmt.Errorf("email.api_key is required in production")
		}
	}
	if config.Settlement.BatchSize <= 0 {
		return fmt.Errorf("settlement.batch_size must be positive")
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true when running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
