// Package signer produces operation signatures from either in-process key
// material or an externally held wallet (browser extension, hardware key,
// remote signer). Both variants implement the same Signer interface so the
// operation builders never care where the key lives. Signing failures always
// surface as errs.SignatureError; an all-zero signature is never returned.
package signer

import (
	"bytes"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/encoding"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
)

// SignatureLength is the expected length of an R||S||V signature.
const SignatureLength = 65

// Signer signs operation payloads. SignPersonal applies EIP-191
// personal-message semantics to a 32-byte packed digest; SignTypedData signs
// a full EIP-712 structure.
type Signer interface {
	Address() common.Address
	SignPersonal(hash common.Hash) ([]byte, error)
	SignTypedData(td apitypes.TypedData) ([]byte, error)
}

// KeyMaterialSigner holds an in-process ECDSA key.
type KeyMaterialSigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewKeyMaterialSigner parses a hex-encoded private key. A malformed key is a
// SignatureError, not a silent fallback.
func NewKeyMaterialSigner(hexKey string) (*KeyMaterialSigner, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, &errs.SignatureError{Reason: "malformed private key", Err: err}
	}
	return &KeyMaterialSigner{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// NewKeyMaterialSignerFromECDSA wraps an already-parsed key.
func NewKeyMaterialSignerFromECDSA(key *ecdsa.PrivateKey) (*KeyMaterialSigner, error) {
	if key == nil {
		return nil, &errs.SignatureError{Reason: "nil private key"}
	}
	return &KeyMaterialSigner{
		key:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the address derived from the key.
func (s *KeyMaterialSigner) Address() common.Address { return s.addr }

// SignPersonal signs keccak256("\x19Ethereum Signed Message:\n32" || hash)
// and returns the 65-byte signature with V normalized to 27/28.
func (s *KeyMaterialSigner) SignPersonal(hash common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(encoding.PersonalDigest(hash).Bytes(), s.key)
	if err != nil {
		return nil, &errs.SignatureError{Reason: "personal sign failed", Err: err}
	}
	return normalizeV(sig), nil
}

// SignTypedData hashes the EIP-712 structure and signs the result with V
// normalized to 27/28. Invalid typed-data construction (including enhanced
// chain-ID mismatch surfaced at hashing time) is a SignatureError.
func (s *KeyMaterialSigner) SignTypedData(td apitypes.TypedData) ([]byte, error) {
	digest, err := encoding.TypedDataHash(td)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, &errs.SignatureError{Reason: "typed data sign failed", Err: err}
	}
	return normalizeV(sig), nil
}

// ExternalWallet is the capability surface an externally held signer must
// provide. SignMessage receives the raw 32-byte digest and is expected to
// apply personal-message prefixing itself (personal_sign semantics), which is
// what browser and hardware wallets do.
type ExternalWallet interface {
	SignMessage(digest []byte) ([]byte, error)
	SignTypedData(td apitypes.TypedData) ([]byte, error)
}

// ExternalSigner adapts an ExternalWallet to the Signer interface. Delegated
// signing may block indefinitely awaiting user approval; callers time it out
// at their layer.
type ExternalSigner struct {
	addr   common.Address
	wallet ExternalWallet
}

// NewExternalSigner wraps the wallet with its known address.
func NewExternalSigner(addr common.Address, wallet ExternalWallet) (*ExternalSigner, error) {
	var zero common.Address
	if addr == zero {
		return nil, &errs.SignatureError{Reason: "external signer address is required"}
	}
	if wallet == nil {
		return nil, &errs.SignatureError{Reason: "external wallet is required"}
	}
	return &ExternalSigner{addr: addr, wallet: wallet}, nil
}

// Address returns the wallet's address as supplied at construction.
func (s *ExternalSigner) Address() common.Address { return s.addr }

// SignPersonal delegates to the wallet's personal_sign over the digest bytes.
func (s *ExternalSigner) SignPersonal(hash common.Hash) ([]byte, error) {
	sig, err := s.wallet.SignMessage(hash.Bytes())
	if err != nil {
		return nil, &errs.SignatureError{Reason: "external signer rejected the message", Err: err}
	}
	return checkExternalSig(sig)
}

// SignTypedData delegates EIP-712 signing to the wallet.
func (s *ExternalSigner) SignTypedData(td apitypes.TypedData) ([]byte, error) {
	sig, err := s.wallet.SignTypedData(td)
	if err != nil {
		return nil, &errs.SignatureError{Reason: "external signer rejected the typed data", Err: err}
	}
	return checkExternalSig(sig)
}

// checkExternalSig rejects malformed or all-zero signatures handed back by an
// external wallet instead of passing them downstream.
func checkExternalSig(sig []byte) ([]byte, error) {
	if len(sig) != SignatureLength {
		return nil, &errs.SignatureError{Reason: "external signer returned a malformed signature"}
	}
	if bytes.Equal(sig, make([]byte, SignatureLength)) {
		return nil, &errs.SignatureError{Reason: "external signer returned an all-zero signature"}
	}
	return normalizeV(sig), nil
}

// normalizeV maps the recovery byte from crypto.Sign's 0/1 to the on-chain
// 27/28 convention, leaving already-normalized signatures untouched.
func normalizeV(sig []byte) []byte {
	out := make([]byte, len(sig))
	copy(out, sig)
	if len(out) == SignatureLength && out[64] < 27 {
		out[64] += 27
	}
	return out
}

// RecoverPersonal recovers the address that produced sig over the EIP-191
// personal digest of hash. Used for best-effort local verification; the
// storage-util contract remains the authoritative verifier.
func RecoverPersonal(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, &errs.SignatureError{Reason: "malformed signature"}
	}
	working := make([]byte, SignatureLength)
	copy(working, sig)
	if working[64] >= 27 {
		working[64] -= 27
	}
	pub, err := crypto.SigToPub(encoding.PersonalDigest(hash).Bytes(), working)
	if err != nil {
		return common.Address{}, &errs.SignatureError{Reason: "signature recovery failed", Err: err}
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// VerifyLocally reports whether sig over hash recovers to expected. A
// structurally malformed signature is simply false, matching the contract's
// behavior for the same input.
func VerifyLocally(hash common.Hash, sig []byte, expected common.Address) bool {
	got, err := RecoverPersonal(hash, sig)
	if err != nil {
		return false
	}
	return got == expected
}

// SigToHex renders a signature as a 0x-prefixed hex string for the relayer
// wire format.
func SigToHex(sig []byte) string {
	return hexutil.Encode(sig)
}
