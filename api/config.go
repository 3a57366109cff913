package api

import (
	"os"
	"time"
)

// network identifiers understood by the gateway
const (
	NetworkTestnet = "TESTNET"
	NetworkMainnet = "MAINNET"
)

// gateway defaults
const (
	DefaultBaseURL       = "https://gateway-api.kalp.studio"
	DefaultBlockchain    = "KALP"
	DefaultWalletAddress = "c7c7894eacdd0457030298d571302b4eacb911b9"
	DefaultContractID    = "hXnehquPHxcvX0joxaLGEBXPyso1hhYo1726835489367"
	DefaultAPIKeyHeader  = "x-api-key"
	DefaultResultPath    = "result.result"
	DefaultTimeout       = 30 * time.Second

	// ClaimAmount is the fixed number of tokens requested by every claim.
	ClaimAmount = 100
)

// API key environment variables, checked in order
const (
	EnvAPIKey       = "KALPDROP_API_KEY"
	EnvPublicAPIKey = "NEXT_PUBLIC_API_KEY"
)

// Config describes the gateway identity a Client speaks for.
// It is injected once at construction; every request carries the same
// Network, Blockchain and WalletAddress.
type Config struct {
	BaseURL       string
	ContractID    string
	Network       string
	Blockchain    string
	WalletAddress string
	APIKeyHeader  string
	// APIKey is consulted on every call so a key rotated in the
	// environment is picked up without rebuilding the client.
	APIKey  func() string
	Timeout time.Duration
}

// DefaultConfig returns the testnet deployment the airdrop runs against.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		ContractID:    DefaultContractID,
		Network:       NetworkTestnet,
		Blockchain:    DefaultBlockchain,
		WalletAddress: DefaultWalletAddress,
		APIKeyHeader:  DefaultAPIKeyHeader,
		APIKey:        EnvAPIKeySource,
		Timeout:       DefaultTimeout,
	}
}

// EnvAPIKeySource reads the API key from the process environment.
func EnvAPIKeySource() string {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	return os.Getenv(EnvPublicAPIKey)
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ContractID == "" {
		c.ContractID = DefaultContractID
	}
	if c.Network == "" {
		c.Network = NetworkTestnet
	}
	if c.Blockchain == "" {
		c.Blockchain = DefaultBlockchain
	}
	if c.WalletAddress == "" {
		c.WalletAddress = DefaultWalletAddress
	}
	if c.APIKeyHeader == "" {
		c.APIKeyHeader = DefaultAPIKeyHeader
	}
	if c.APIKey == nil {
		c.APIKey = EnvAPIKeySource
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
	return c
}
