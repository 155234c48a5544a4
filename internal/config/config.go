package config

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

// Config holds the settings of every storefront binary. Each service reads
// only its own section. Values come from STOREFRONT_-prefixed environment
// variables, an optional .env file and optional YAML config files.
type Config struct {
	Env      string `default:"dev" usage:"Deployment environment (dev or prod)"`
	Account  AccountConfig
	Product  ProductConfig
	Gateway  GatewayConfig
	Auth     AuthConfig
	Kafka    KafkaConfig
	Payment  PaymentConfig
	Graceful GracefulConfig
}

type AccountConfig struct {
	Addr        string `default:"0.0.0.0:3001" usage:"Account service listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (STOREFRONT_ACCOUNT_DATABASE_URL or DATABASE_URL)"`
}

type ProductConfig struct {
	Addr     string `default:"0.0.0.0:3002" usage:"Product service listen address"`
	MongoURI string `default:"mongodb://localhost:27017" usage:"MongoDB connection URI (or MONGO_URI)"`
	Database string `default:"productdb" usage:"MongoDB database name"`
}

type GatewayConfig struct {
	Addr              string        `default:"0.0.0.0:8000" usage:"Gateway listen address"`
	AccountServiceURL string        `default:"http://account-service:3001" usage:"Base URL of the account service"`
	ProductServiceURL string        `default:"http://product-service:3002" usage:"Base URL of the product service"`
	UpstreamTimeout   time.Duration `default:"10s" usage:"Timeout for proxied upstream calls"`
}

type AuthConfig struct {
	JWTSecret string `usage:"HS256 secret used to verify identity tokens"`
	// Insecure accepts identity tokens without verifying their signature.
	// Only for local development against an auth emulator.
	Insecure bool `default:"false" usage:"Skip identity token signature verification"`
}

type KafkaConfig struct {
	Brokers     []string `usage:"Kafka brokers for domain events; empty disables publishing"`
	TopicPrefix string   `default:"storefront" usage:"Prefix for domain event topics"`
}

type PaymentConfig struct {
	Currency string  `default:"USD" usage:"Currency reported by the mock payment gateway"`
	FeeRate  float64 `default:"0.029" usage:"Fee rate reported by the mock payment gateway"`
}

type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration"`
}

// Load reads .env (if present), then environment variables and YAML files.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		SkipFlags: true,
		Files:     []string{"config.yaml", "/etc/storefront/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	if c.Env == "prod" && c.Auth.Insecure {
		return errors.New("auth: insecure token decoding is not allowed in prod")
	}
	if c.Gateway.UpstreamTimeout <= 0 {
		return errors.New("gateway: upstream timeout must be positive")
	}
	return nil
}

// ValidateAuth is called by the services that verify identity tokens.
func (c *Config) ValidateAuth() error {
	if !c.Auth.Insecure && c.Auth.JWTSecret == "" {
		return errors.New("auth: set STOREFRONT_AUTH_JWTSECRET or enable STOREFRONT_AUTH_INSECURE")
	}
	return nil
}

// applyPlatformDefaults maps conventional variable names (DATABASE_URL,
// MONGO_URI, JWT_SECRET) onto the prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.Account.DatabaseURL == "" {
		c.Account.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if v := os.Getenv("MONGO_URI"); v != "" && c.Product.MongoURI == "mongodb://localhost:27017" {
		c.Product.MongoURI = v
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}
}

// ListenAddr returns addr with its port replaced by $PORT when set.
func ListenAddr(addr string) string {
	port := os.Getenv("PORT")
	if port == "" {
		return addr
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
