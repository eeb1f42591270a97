// Package encoding produces the canonical byte sequences hashed and signed
// for unified-ID operations.
//
// Two signature families exist, and both must reproduce byte-for-byte what
// the on-chain verifier recomputes, so all encoding rules are centralized
// here.
//
// # Packed-Hash Family
//
// The registries verify EIP-191 personal-message signatures over a
// keccak-256 of the ABI-encoded operation tuple concatenated with the
// 32-byte nonce word:
//
//	hash, err := encoding.RegisterHash("alice_01", userAddr, nonce)
//	digest := encoding.PersonalDigest(hash) // adds "\x19Ethereum Signed Message:\n32"
//
// One hash constructor per operation: RegisterHash, AddSecondaryHash,
// RemoveSecondaryHash, ChangePrimaryHash, UpdateIdentifierHash. The nonce is
// always the final word; NonceWord exposes the padding rule.
//
// # EIP-712 Family
//
// For wallets that present structured signing prompts, the same operations
// are available as typed data:
//
//	td, err := encoding.RegisterTypedData(encoding.TypedParams{
//		ChainID:  11155111,
//		Contract: registryAddr,
//		Nonce:    nonce,
//	}, "alice_01", userAddr)
//	hash, err := encoding.TypedDataHash(td)
//
// The domain is pinned by name, version, chain ID and verifying contract, so
// a signature for one chain or deployment never validates on another.
//
// # Options Blob
//
// OptionsBlob serializes the nonce and deadline into the JSON string
// carried by every relayer payload. Its field order is part of the wire
// contract and must not change.
package encoding
