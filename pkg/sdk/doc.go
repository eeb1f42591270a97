// Package sdk provides the high-level Go client for the unified-ID platform.
//
// A unified ID is a human-readable identifier (3-64 characters of
// [A-Za-z0-9_-]) bound on-chain to a set of EVM wallet addresses: one master
// address recorded on the mother registry, plus one primary and any number of
// secondary addresses per chain on the child registry. This package wires
// configuration, chain reads, signature construction and relayer submission
// into a single facade.
//
// # Getting Started
//
// Create a config, then an SDK instance:
//
//	cfg := &config.Config{
//		BaseURL:    "https://relayer.example.com",
//		AuthToken:  "token",
//		ChainID:    11155111,
//		RPCAddr:    "https://sepolia.example.com",
//		PrivateKey: "0x...", // optional, enables auto-signing
//	}
//
//	unifiedSDK, err := sdk.NewSDK(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer unifiedSDK.Close()
//
// NewSDK validates the config, resolves the registry addresses for the
// (environment, chainId) pair, and dials the RPC endpoint. No relayer
// traffic happens until an operation is submitted.
//
// # Write Operations
//
// Five operations change on-chain state. Each comes in two flavors:
//
// Auto-signed — the SDK fetches the fresh nonce, computes the canonical
// digest, and drives the configured (or supplied) signer:
//
//	result, err := unifiedSDK.Register(ctx, builder.RegisterSignParams{
//		UnifiedID: "alice_01",
//	})
//
// Pre-signed — the caller brings finished signatures, typically produced by
// an external wallet:
//
//	result, err := unifiedSDK.RegisterPreSigned(ctx, builder.RegisterParams{
//		UnifiedID:     "alice_01",
//		UserAddress:   addr.Hex(),
//		UserSignature: sigHex,
//	})
//
// The full set: Register, AddSecondaryAddress, RemoveSecondaryAddress,
// ChangePrimaryAddress, UpdateUnifiedID. Two-party operations (add-secondary,
// change-primary) carry two signatures over the same digest.
//
// # Result Semantics
//
// Write operations fold every expected failure into model.Result rather than
// a Go error:
//
//	result, err := unifiedSDK.Register(ctx, params)
//	if err != nil {
//		// programmer error: malformed identifier, bad address, nil signer
//	}
//	if !result.Success {
//		// relayer rejection, stale nonce, signer refusal, transport failure
//		fmt.Println(result.Error, result.Details)
//	}
//
// Only validation failures (errs.ValidationError) surface as errors; they
// indicate a bug in the caller, not a runtime condition.
//
// # Read Operations
//
// Reads resolve registry state and map "not found" to sentinel values
// instead of errors:
//
//	master, err := unifiedSDK.GetMasterWallet(ctx, "alice_01")
//	// master == common.Address{} when the identifier is unregistered
//
//	role, err := unifiedSDK.ResolveAddressRole(ctx, addr.Hex())
//	// role.IsPrimary / role.IsSecondary, role.UnifiedID
//
//	chainData, err := unifiedSDK.ValidateChainData(ctx, "alice_01")
//	// primary + secondaries as the mother registry sees this chain
//
// Errors from reads mean genuine transport or contract failures, wrapped as
// errs.NetworkError or errs.ContractCallError.
//
// # Observers
//
// Attach an Observer to see each operation's lifecycle (built, submitted,
// accepted/rejected) for logging or metrics:
//
//	core := unifiedSDK.(*sdk.Core)
//	core.WithObserver(myObserver)
//
// # Logging
//
// The package installs a default global zap logger on init. Replace it with
// zap.ReplaceGlobals if the application has its own logging setup.
//
// # See Also
//
//   - builder package for payload construction without submission
//   - blockchain package for low-level registry reads
//   - signer package for key-material and external-wallet signing
//   - examples/quick-start for a complete walkthrough
package sdk
