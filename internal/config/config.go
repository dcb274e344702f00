package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

const (
	// CyberSource Simple Order API transaction processor endpoints.
	defaultLiveEndpoint = "https://ics2ws.ic3.com/commerce/1.x/transactionProcessor"
	defaultTestEndpoint = "https://ics2wstest.ic3.com/commerce/1.x/transactionProcessor"
)

type Config struct {
	Primary Primary       `koanf:"primary"`
	Server  ServerConfig  `koanf:"server"`
	Gateway GatewayConfig `koanf:"gateway"`
	Logger  LoggerConfig  `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// GatewayConfig holds the merchant account settings. Two complete
// endpoint/credential sets are configured; the sandbox flag picks which one
// a transaction uses.
type GatewayConfig struct {
	MerchantID      string        `koanf:"merchant_id" validate:"required"`
	LiveSecurityKey string        `koanf:"live_security_key"`
	TestSecurityKey string        `koanf:"test_security_key"`
	LiveEndpoint    string        `koanf:"live_endpoint" validate:"required"`
	TestEndpoint    string        `koanf:"test_endpoint" validate:"required"`
	SandboxMode     bool          `koanf:"sandbox_mode"`
	SaleMethod      string        `koanf:"sale_method" validate:"required,oneof=sale auth"`
	Protocol        string        `koanf:"protocol" validate:"required,oneof=soap nvp"`
	ConnTimeout     time.Duration `koanf:"conn_timeout" validate:"required"`
}

// Endpoint returns the transaction processor URL for the active mode.
func (c GatewayConfig) Endpoint() string {
	if c.SandboxMode {
		return c.TestEndpoint
	}
	return c.LiveEndpoint
}

// Credentials returns the merchant ID and the security key for the active
// mode. Never log the key.
func (c GatewayConfig) Credentials() (string, string) {
	if c.SandboxMode {
		return c.MerchantID, c.TestSecurityKey
	}
	return c.MerchantID, c.LiveSecurityKey
}

// CaptureOnSale reports whether funds are captured immediately rather than
// authorized only.
func (c GatewayConfig) CaptureOnSale() bool {
	return c.SaleMethod == "sale"
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

// NewLogger builds a JSON slog logger at the configured level.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("CYBERSOURCE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CYBERSOURCE_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	applyDefaults(mainConfig)

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Gateway.LiveEndpoint == "" {
		cfg.Gateway.LiveEndpoint = defaultLiveEndpoint
	}
	if cfg.Gateway.TestEndpoint == "" {
		cfg.Gateway.TestEndpoint = defaultTestEndpoint
	}
	if cfg.Gateway.ConnTimeout == 0 {
		cfg.Gateway.ConnTimeout = 90 * time.Second
	}
	if cfg.Gateway.SaleMethod == "" {
		cfg.Gateway.SaleMethod = "sale"
	}
	if cfg.Gateway.Protocol == "" {
		cfg.Gateway.Protocol = "soap"
	}
}
