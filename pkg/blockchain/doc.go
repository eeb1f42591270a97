// Package blockchain provides read-only access to the unified-ID registries
// on EVM chains.
//
// Three contracts hold the identifier state:
//   - Mother registry: the authoritative record. Master address, per-chain
//     wallet sets, and the operation nonce live here.
//   - Child registry: the per-chain view. Primary and secondary addresses
//     plus reverse address-to-identifier resolution.
//   - Storage util: shared helpers. Fee quoting, signature verification and
//     identifier validity checks.
//
// All state changes go through the off-chain relayer; this package never
// signs or submits transactions.
//
// # EVMClient
//
// EVMClient binds the three contracts behind one handle:
//
//	evm, err := blockchain.InitEvm(
//		rpcEndpoint,
//		motherAddr, childAddr, storageUtilAddr,
//		5*time.Second,  // dial timeout
//		12*time.Second, // per-read timeout
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer evm.Close()
//
// The dial timeout bounds the initial RPC connection. The read timeout is
// layered on top of the caller's context for every contract call; pass zero
// to disable either.
//
// Tests construct a client over a fake backend instead of dialing:
//
//	evm, err := blockchain.NewEVMClientWithBackend(backend, mother, child, util)
//
// # Read Semantics
//
// Readers map "not found" to sentinel values, never errors:
//
//	master, err := evm.GetMasterWallet(ctx, "alice_01")
//	// zero address when unregistered
//
//	id, err := evm.GetIdentifierByPrimaryAddress(ctx, addr, chainID)
//	// empty string when the address is unknown
//
// A revert from the contract is treated the same as an empty answer. Real
// errors are wrapped: transport problems as errs.NetworkError, everything
// else as errs.ContractCallError with the failing operation named.
//
// # Nonces
//
// GetNonce tries the registry's nonces accessor first and falls back to the
// legacy getNonce accessor, so the client works against both contract
// revisions:
//
//	nonce, err := evm.GetNonce(ctx, "alice_01")
//
// # Fees
//
// GetRegistrationFee quotes the token amount required for a registration,
// given a payment token and a base fee in wei. FeeToWei and WeiToFee convert
// between human units and wei using shopspring/decimal, accepting string,
// float, integer and decimal inputs without float64 precision loss.
//
// # See Also
//
//   - sdk package for the high-level facade
//   - model package for MotherRecord, AddressRole and ChainData
package blockchain
