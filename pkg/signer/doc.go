// Package signer produces operation signatures from in-process key material
// or an externally held wallet.
//
// # Signer Interface
//
// Both implementations satisfy the same small interface, so the operation
// builders never care where the key lives:
//
//	type Signer interface {
//		Address() common.Address
//		SignPersonal(hash common.Hash) ([]byte, error)
//		SignTypedData(td apitypes.TypedData) ([]byte, error)
//	}
//
// # Key-Material Signing
//
//	s, err := signer.NewKeyMaterialSigner("0xac09...ff80")
//	sig, err := s.SignPersonal(hash)
//
// The hex key may carry a 0x prefix. NewKeyMaterialSignerFromECDSA accepts
// an already-parsed *ecdsa.PrivateKey.
//
// # External Wallets
//
// ExternalSigner adapts a browser extension, hardware key or remote signing
// service behind the ExternalWallet callback interface. Returned signatures
// are length-checked and V-normalized (0/1 becomes 27/28) before use, so
// wallets that emit either convention interoperate.
//
// # Verification Helpers
//
// RecoverPersonal recovers the signing address from an EIP-191 signature;
// VerifyLocally checks one against an expected address without a network
// round trip:
//
//	if !signer.VerifyLocally(hash, sig, expected) {
//		// wrong key signed
//	}
//
// Signing failures always surface as errs.SignatureError, and an all-zero
// signature is never returned.
package signer
