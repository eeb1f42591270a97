// Package config defines the runtime configuration for the SDK.
//
// # Minimal Config
//
//	cfg := &config.Config{
//		BaseURL:   "https://relayer.example.com",
//		AuthToken: "token",
//		ChainID:   11155111,
//		RPCAddr:   "https://sepolia.example.com",
//	}
//
// Environment defaults to Testnet; PrivateKey is optional and only needed
// for auto-signed operations.
//
// # Validation and Defaults
//
// Validate checks required fields, verifies the chain is supported by the
// environment, and fills defaults (testnet environment, one-hour deadline
// offset). Field problems come back as errs.ValidationError naming the
// field. Timeouts.WithDefaults fills zero timeout values:
//
//	Dial:      5s   // RPC dial/connect
//	ChainRead: 12s  // per contract read
//	Relayer:   30s  // relayer HTTP round trip
//
// # Contract Addresses
//
// ContractAddresses resolves the mother, child and storage-util registry
// addresses from the built-in deployment table for the configured
// (environment, chainId), and SupportedChains lists the chains an
// environment knows. Setting Config.Contracts overrides the table entirely,
// which is how tests and private deployments point at their own registries:
//
//	cfg.Contracts = &config.ContractAddresses{
//		Mother:      motherAddr,
//		Child:       childAddr,
//		StorageUtil: utilAddr,
//	}
package config
