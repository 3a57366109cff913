package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. KALPDROP_GATEWAY_NETWORK.
const EnvPrefix = "KALPDROP"

// config keys
const (
	KeyBaseURL       = "gateway.base_url"
	KeyContractID    = "gateway.contract_id"
	KeyNetwork       = "gateway.network"
	KeyBlockchain    = "gateway.blockchain"
	KeyWalletAddress = "gateway.wallet_address"
	KeyAPIKey        = "gateway.api_key"
	KeyAPIKeyHeader  = "gateway.api_key_header"
	KeyTimeout       = "gateway.timeout"
	KeyResultPath    = "gateway.result_path"
	KeyAccount       = "account"
	KeyLogLevel      = "log.level"
)

type GatewayConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	ContractID    string        `mapstructure:"contract_id"`
	Network       string        `mapstructure:"network"`
	Blockchain    string        `mapstructure:"blockchain"`
	WalletAddress string        `mapstructure:"wallet_address"`
	APIKey        string        `mapstructure:"api_key"`
	APIKeyHeader  string        `mapstructure:"api_key_header"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ResultPath    string        `mapstructure:"result_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the resolved kalpdrop configuration.
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway"`
	Account string        `mapstructure:"account"`
	Log     LogConfig     `mapstructure:"log"`

	path string
	v    *viper.Viper
	// file holds only what the config file says plus explicit Set calls;
	// it is what Save writes, so environment overrides never leak to disk
	file *viper.Viper
}

// DefaultDir returns ~/.kalpdrop
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".kalpdrop"), nil
}

// DefaultPath returns ~/.kalpdrop/config.yaml
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path (the default path when empty). A
// missing file is not an error. A .env file in the working directory is
// loaded into the environment first; variables already set take precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfig(v, path); err != nil {
		return nil, err
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if err := readConfig(file, path); err != nil {
		return nil, err
	}

	cfg := &Config{path: path, v: v, file: file}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Gateway.Network = NormalizeNetwork(cfg.Gateway.Network)
	return cfg, nil
}

// readConfig reads the config file into v; a missing file is not an error
func readConfig(v *viper.Viper, path string) error {
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, api.DefaultBaseURL)
	v.SetDefault(KeyContractID, api.DefaultContractID)
	v.SetDefault(KeyNetwork, api.NetworkTestnet)
	v.SetDefault(KeyBlockchain, api.DefaultBlockchain)
	v.SetDefault(KeyWalletAddress, api.DefaultWalletAddress)
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyAPIKeyHeader, api.DefaultAPIKeyHeader)
	v.SetDefault(KeyTimeout, api.DefaultTimeout)
	v.SetDefault(KeyResultPath, api.DefaultResultPath)
	v.SetDefault(KeyAccount, "")
	v.SetDefault(KeyLogLevel, "warn")
}

// NormalizeNetwork maps user input such as "testnet" onto the gateway's
// network identifiers. Unknown values fall back to testnet.
func NormalizeNetwork(network string) string {
	switch strings.ToUpper(strings.TrimSpace(network)) {
	case api.NetworkMainnet:
		return api.NetworkMainnet
	default:
		return api.NetworkTestnet
	}
}

// Path returns the file the configuration is read from and saved to.
func (c *Config) Path() string {
	return c.path
}

// APIKey resolves the gateway API key. It is evaluated on every call:
// KALPDROP_API_KEY, then NEXT_PUBLIC_API_KEY, then the config file.
func (c *Config) APIKey() string {
	if key := api.EnvAPIKeySource(); key != "" {
		return key
	}
	return c.Gateway.APIKey
}

// API returns the client configuration derived from c.
func (c *Config) API() api.Config {
	return api.Config{
		BaseURL:       strings.TrimRight(c.Gateway.BaseURL, "/"),
		ContractID:    c.Gateway.ContractID,
		Network:       c.Gateway.Network,
		Blockchain:    c.Gateway.Blockchain,
		WalletAddress: c.Gateway.WalletAddress,
		APIKeyHeader:  c.Gateway.APIKeyHeader,
		APIKey:        c.APIKey,
		Timeout:       c.Gateway.Timeout,
	}
}

// Set updates a key in memory; call Save to persist it.
func (c *Config) Set(key string, value interface{}) error {
	c.v.Set(key, value)
	c.file.Set(key, value)
	if err := c.v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	c.Gateway.Network = NormalizeNetwork(c.Gateway.Network)
	return nil
}

// Save writes the configuration file, creating its directory if needed. Only
// values read from the file or changed through Set are written.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := c.file.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Chmod(c.path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config permissions: %w", err)
	}
	return nil
}
