// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type Config struct {
	RPCURL             string `mapstructure:"rpc_url"`
	QuoteURL           string `mapstructure:"quote_url"`
	SwapURL            string `mapstructure:"swap_url"`
	WalletFile         string `mapstructure:"wallet_file"`
	HTTPTimeoutSec     int    `mapstructure:"http_timeout_sec"`
	SendRetries        int    `mapstructure:"send_retries"`
	DefaultSlippageBps int    `mapstructure:"default_slippage_bps"`
	DebugLogging       bool   `mapstructure:"debug_logging"`
}

const (
	DefaultRPCURL     = "https://api.mainnet-beta.solana.com"
	DefaultQuoteURL   = "https://quote-api.jup.ag/v6/quote"
	DefaultSwapURL    = "https://quote-api.jup.ag/v6/swap"
	DefaultWalletFile = "wallet.json"

	DefaultHTTPTimeoutSec = 30
	DefaultSendRetries    = 3
	DefaultSlippageBps    = 100
)

// LoadConfig читает конфигурационный файл и накладывает его поверх
// встроенных значений по умолчанию. Отсутствие файла — не ошибка:
// значения по умолчанию покрывают все параметры, и утилита работает
// без какой-либо настройки. Переменные окружения с префиксом
// SOL_SWAPPER имеют высший приоритет.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_url":              DefaultRPCURL,
		"quote_url":            DefaultQuoteURL,
		"swap_url":             DefaultSwapURL,
		"wallet_file":          DefaultWalletFile,
		"http_timeout_sec":     DefaultHTTPTimeoutSec,
		"send_retries":         DefaultSendRetries,
		"default_slippage_bps": DefaultSlippageBps,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	loadEnvironmentVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if err := validateURLWithCache(cfg.RPCURL, "http"); err != nil {
		return errors.New("invalid RPC URL")
	}
	if err := validateURLWithCache(cfg.QuoteURL, "http"); err != nil {
		return errors.New("invalid quote URL")
	}
	if err := validateURLWithCache(cfg.SwapURL, "http"); err != nil {
		return errors.New("invalid swap URL")
	}
	if cfg.WalletFile == "" {
		return errors.New("wallet_file is empty")
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.HTTPTimeoutSec <= 0 {
		return errors.New("invalid http_timeout_sec")
	}
	if cfg.SendRetries < 0 {
		return errors.New("invalid send_retries count")
	}
	if cfg.DefaultSlippageBps <= 0 {
		return errors.New("invalid default_slippage_bps")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

func loadEnvironmentVariables(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("SOL_SWAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// AutomaticEnv не видит ключи, заданные только через SetDefault,
	// поэтому переопределяемые ключи привязываем явно.
	for _, key := range []string{"rpc_url", "quote_url", "swap_url", "wallet_file"} {
		_ = v.BindEnv(key)
	}
}
