// Package config defines the runtime configuration for the SDK: relayer
// endpoint and credentials, target chain and environment, RPC endpoint,
// optional signing key, and per-operation timeouts. It also resolves the
// registry contract addresses for a given (environment, chainId) pair.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
)

// Environment selects the deployment the SDK talks to. Each environment
// supports its own set of chain IDs.
type Environment string

const (
	Testnet Environment = "testnet"
	Mainnet Environment = "mainnet"
)

// ContractAddresses holds the three registry addresses for one chain.
type ContractAddresses struct {
	Mother      common.Address
	Child       common.Address
	StorageUtil common.Address
}

// deployments maps (environment, chainId) to the registry addresses of that
// deployment. Chains absent from the map are rejected by Validate.
var deployments = map[Environment]map[uint64]ContractAddresses{
	Testnet: {
		// Sepolia
		11155111: {
			Mother:      common.HexToAddress("0x8C7b9D2F0E31a46c5D8f14E14aB2E9E3cC14d4B1"),
			Child:       common.HexToAddress("0x4d21B8F6A97cE1D2E2b9A0fC5d3E8b7A6f0C9E32"),
			StorageUtil: common.HexToAddress("0xA1E4f8B20c3D5E697a8B4C1D2E3F4a5B6C7D8E90"),
		},
		// Polygon Amoy
		80002: {
			Mother:      common.HexToAddress("0x3F8a1B2c4D5E6f7A8B9C0D1E2F3a4B5C6D7E8F90"),
			Child:       common.HexToAddress("0x9B0c1D2E3F4a5B6C7D8E9F0a1B2C3D4E5F6a7B80"),
			StorageUtil: common.HexToAddress("0x5C6D7E8F9a0B1C2D3E4F5a6B7C8D9E0F1a2B3C41"),
		},
	},
	Mainnet: {
		// Ethereum
		1: {
			Mother:      common.HexToAddress("0x1A2b3C4d5E6F7a8B9c0D1e2F3A4b5C6d7E8F9a01"),
			Child:       common.HexToAddress("0x2B3c4D5e6F7a8B9C0d1E2f3A4B5c6D7e8F9A0b12"),
			StorageUtil: common.HexToAddress("0x3C4d5E6f7A8b9C0D1e2F3a4B5C6d7E8f9A0B1c23"),
		},
		// Polygon
		137: {
			Mother:      common.HexToAddress("0x4D5e6F7a8B9c0D1E2f3A4b5C6D7e8F9a0B1C2d34"),
			Child:       common.HexToAddress("0x5E6f7A8b9C0d1E2F3a4B5c6D7E8f9A0b1C2D3e45"),
			StorageUtil: common.HexToAddress("0x6F7a8B9c0D1e2F3A4b5C6D7e8F9a0B1C2d3E4f56"),
		},
	},
}

// SupportedChains returns the chain IDs supported by the given environment.
func SupportedChains(env Environment) []uint64 {
	chains := make([]uint64, 0, len(deployments[env]))
	for id := range deployments[env] {
		chains = append(chains, id)
	}
	return chains
}

// Config holds all SDK settings required to initialize the chain reader,
// signer and relayer client. Use Validate to fill implicit defaults and check
// required fields before construction.
type Config struct {
	// BaseURL is the relayer HTTP API base URL (required).
	BaseURL string `json:"base_url" yaml:"base_url"`
	// AuthToken authenticates relayer requests (required).
	AuthToken string `json:"auth_token" yaml:"auth_token"`
	// ChainID selects the target chain; must be supported by Environment.
	ChainID uint64 `json:"chain_id" yaml:"chain_id"`
	// Environment selects testnet or mainnet deployments. Default: Testnet.
	Environment Environment `json:"environment" yaml:"environment"`
	// RPCAddr is the JSON-RPC endpoint used for read-only contract calls (required).
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// PrivateKey is a hex-encoded ECDSA key for auto-signed operations
	// (optional if the caller supplies pre-made signatures or an external signer).
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// DeadlineOffset is added to the current time to form each payload's
	// deadline. Default: one hour.
	DeadlineOffset time.Duration `json:"deadline_offset" yaml:"deadline_offset"`
	// Contracts overrides the built-in registry addresses when set.
	Contracts *ContractAddresses `json:"contracts,omitempty" yaml:"contracts,omitempty"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation deadlines. See Timeouts.WithDefaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial      time.Duration // RPC dial/connect
	ChainRead time.Duration // eth_call and friends
	Relayer   time.Duration // relayer HTTP round trip
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:      5s
//	ChainRead: 12s
//	Relayer:   30s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.Relayer == 0 {
		tt.Relayer = 30 * time.Second
	}
	return tt
}

// Validate normalizes the configuration (default environment, deadline
// offset) and verifies that BaseURL, AuthToken and RPCAddr are present, that
// BaseURL parses as an absolute URL, and that the (environment, chainId)
// pair maps to a known deployment. Each failure produces its own descriptive
// error.
func (c *Config) Validate() error {
	if c.Environment == "" {
		c.Environment = Testnet
	}
	if c.DeadlineOffset == 0 {
		c.DeadlineOffset = time.Hour
	}

	if c.BaseURL == "" {
		return errs.NewValidation("baseURL", "relayer base URL is required")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() {
		return errs.NewValidation("baseURL", fmt.Sprintf("not an absolute URL: %q", c.BaseURL))
	}
	if c.AuthToken == "" {
		return errs.NewValidation("authToken", "relayer auth token is required")
	}
	if c.RPCAddr == "" {
		return errs.NewValidation("rpcAddr", "RPC address is required")
	}
	if c.Environment != Testnet && c.Environment != Mainnet {
		return errs.NewValidation("environment", fmt.Sprintf("unknown environment %q", c.Environment))
	}
	if _, err := c.ContractAddresses(); err != nil {
		return err
	}
	return nil
}

// ContractAddresses resolves the registry addresses for the configured
// (environment, chainId), honoring the Contracts override when present.
func (c *Config) ContractAddresses() (ContractAddresses, error) {
	if c.Contracts != nil {
		var zero common.Address
		if c.Contracts.Mother == zero || c.Contracts.Child == zero || c.Contracts.StorageUtil == zero {
			return ContractAddresses{}, errs.NewValidation("contracts", "override must set mother, child and storageUtil addresses")
		}
		return *c.Contracts, nil
	}
	addrs, ok := deployments[c.Environment][c.ChainID]
	if !ok {
		return ContractAddresses{}, errs.NewValidation("chainId",
			fmt.Sprintf("chain %d is not supported on %s", c.ChainID, c.Environment))
	}
	return addrs, nil
}
