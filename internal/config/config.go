package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Storage struct {
		Endpoint         string `mapstructure:"endpoint"`
		AccessKey        string `mapstructure:"access_key"`
		SecretKey        string `mapstructure:"secret_key"`
		Region           string `mapstructure:"region"`
		ImageBucket      string `mapstructure:"image_bucket"`
		AttachmentBucket string `mapstructure:"attachment_bucket"`
		PublicBaseURL    string `mapstructure:"public_base_url"`
	} `mapstructure:"storage"`

	AI struct {
		QuoteEndpoint     string `mapstructure:"quote_endpoint"`
		AssistantEndpoint string `mapstructure:"assistant_endpoint"`
		ImageEndpoint     string `mapstructure:"image_endpoint"`
		APIKey            string `mapstructure:"api_key"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"ai"`

	Razorpay struct {
		KeyID         string `mapstructure:"key_id"`
		KeySecret     string `mapstructure:"key_secret"`
		WebhookSecret string `mapstructure:"webhook_secret"`
	} `mapstructure:"razorpay"`

	// Validation limits are configured once here instead of being duplicated
	// per form.
	Validation struct {
		MinOrderQuantity    int `mapstructure:"min_order_quantity"`
		MaxOrderQuantity    int `mapstructure:"max_order_quantity"`
		MaxImageSizeMB      int `mapstructure:"max_image_size_mb"`
		MaxAttachmentSizeMB int `mapstructure:"max_attachment_size_mb"`
	} `mapstructure:"validation"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "stitch-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "stitch_db")
	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.image_bucket", "product-images")
	v.SetDefault("storage.attachment_bucket", "message-attachments")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("validation.min_order_quantity", 50)
	v.SetDefault("validation.max_order_quantity", 100000)
	v.SetDefault("validation.max_image_size_mb", 5)
	v.SetDefault("validation.max_attachment_size_mb", 20)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in config or environment")
		}
	}

	// Storage credentials come from the environment in production
	if key := os.Getenv("STORAGE_ACCESS_KEY"); key != "" {
		cfg.Storage.AccessKey = key
	}
	if secret := os.Getenv("STORAGE_SECRET_KEY"); secret != "" {
		cfg.Storage.SecretKey = secret
	}
	if endpoint := os.Getenv("STORAGE_ENDPOINT"); endpoint != "" {
		cfg.Storage.Endpoint = endpoint
	}

	if key := os.Getenv("AI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}

	// Load Razorpay config from environment variables
	if keyID := os.Getenv("RAZORPAY_KEY_ID"); keyID != "" {
		cfg.Razorpay.KeyID = keyID
	}
	if keySecret := os.Getenv("RAZORPAY_KEY_SECRET"); keySecret != "" {
		cfg.Razorpay.KeySecret = keySecret
	}
	if webhookSecret := os.Getenv("RAZORPAY_WEBHOOK_SECRET"); webhookSecret != "" {
		cfg.Razorpay.WebhookSecret = webhookSecret
	}

	return &cfg
}

// MaxImageSizeBytes returns the upload ceiling for product/stage images.
func (c *Config) MaxImageSizeBytes() int64 {
	return int64(c.Validation.MaxImageSizeMB) * 1024 * 1024
}

// MaxAttachmentSizeBytes returns the upload ceiling for message attachments.
func (c *Config) MaxAttachmentSizeBytes() int64 {
	return int64(c.Validation.MaxAttachmentSizeMB) * 1024 * 1024
}
