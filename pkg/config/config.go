package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config is read once at startup and handed to each component.
type Config struct {
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID      string `env:"TELEGRAM_CHAT_ID"`
	TelegramAPIEndpoint string `env:"TELEGRAM_API_ENDPOINT" envDefault:"https://api.telegram.org/bot%s/%s"`

	ExplorerURL    string `env:"EXPLORER_URL" envDefault:"https://api.basescan.org/api"`
	ExplorerAPIKey string `env:"BASESCAN_API_KEY"`
	WalletAddress  string `env:"WALLET_ADDRESS"`
	NodeName       string `env:"NODE_NAME"`
	StartBlock     int64  `env:"START_BLOCK" envDefault:"21000000"`
	EndBlock       int64  `env:"END_BLOCK" envDefault:"99999999"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	PushgatewayURL string `env:"PUSHGATEWAY_URL"`
}

// Load reads envFile (if it exists) into the process environment, decodes
// the environment and validates the result.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	required := []struct {
		name, value string
	}{
		{"TELEGRAM_BOT_TOKEN", c.TelegramBotToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
		{"BASESCAN_API_KEY", c.ExplorerAPIKey},
		{"WALLET_ADDRESS", c.WalletAddress},
		{"NODE_NAME", c.NodeName},
		{"EXPLORER_URL", c.ExplorerURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Sprintf("%s is required", r.name))
		}
	}

	if c.WalletAddress != "" && !common.IsHexAddress(c.WalletAddress) {
		errs = append(errs, fmt.Sprintf("WALLET_ADDRESS %q is not a hex address", c.WalletAddress))
	}

	if c.StartBlock < 0 {
		errs = append(errs, "START_BLOCK cannot be negative")
	}
	if c.StartBlock > c.EndBlock {
		errs = append(errs, fmt.Sprintf("START_BLOCK (%d) cannot be greater than END_BLOCK (%d)", c.StartBlock, c.EndBlock))
	}

	if strings.Count(c.TelegramAPIEndpoint, "%s") != 2 {
		errs = append(errs, "TELEGRAM_API_ENDPOINT must contain two %s verbs (token, method)")
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
