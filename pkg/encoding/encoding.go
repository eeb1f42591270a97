// Package encoding produces the canonical byte sequences hashed and signed
// for every unified-ID operation. Two families exist: the packed-hash family
// (ABI-encoded tuple concatenated with the nonce word, keccak-256, signed as
// an EIP-191 personal message) and the EIP-712 typed-data family. Both must
// match byte-for-byte what the on-chain verifier recomputes, so all encoding
// lives here and nowhere else.
package encoding

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
)

// HashPrefix32Bytes is the standard Ethereum personal-sign prefix for 32-byte
// messages: "\x19Ethereum Signed Message:\n32".
var HashPrefix32Bytes = []byte("\x19Ethereum Signed Message:\n32")

var (
	typString, _  = abi.NewType("string", "", nil)
	typAddress, _ = abi.NewType("address", "", nil)
	typUint256, _ = abi.NewType("uint256", "", nil)

	stringAddressArgs = abi.Arguments{{Type: typString}, {Type: typAddress}}
	stringStringArgs  = abi.Arguments{{Type: typString}, {Type: typString}}
	optionsArgs       = abi.Arguments{{Type: typUint256}, {Type: typUint256}}
)

// NonceWord encodes a nonce as the 32-byte big-endian word that is packed
// after the ABI-encoded tuple.
func NonceWord(nonce *big.Int) []byte {
	return common.BigToHash(nonce).Bytes()
}

// packedHash ABI-encodes the tuple, concatenates the nonce word and hashes
// with keccak-256. This is the digest the packed family signs.
func packedHash(args abi.Arguments, nonce *big.Int, values ...any) (common.Hash, error) {
	if nonce == nil || nonce.Sign() < 0 {
		return common.Hash{}, errs.NewValidation("nonce", "nonce is required and must be non-negative")
	}
	blob, err := args.Pack(values...)
	if err != nil {
		return common.Hash{}, errs.NewValidation("payload", err.Error())
	}
	return crypto.Keccak256Hash(blob, NonceWord(nonce)), nil
}

func checkUnifiedID(field, id string) error {
	if !model.IsValidUnifiedID(id) {
		return errs.NewValidation(field, "must be 3-64 characters of letters, digits, underscore or hyphen")
	}
	return nil
}

// RegisterHash returns the packed digest for registering unifiedID to
// userAddress at the given nonce.
func RegisterHash(unifiedID string, userAddress common.Address, nonce *big.Int) (common.Hash, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return common.Hash{}, err
	}
	return packedHash(stringAddressArgs, nonce, unifiedID, userAddress)
}

// ChangePrimaryHash returns the packed digest for switching unifiedID's
// primary wallet to newAddress.
func ChangePrimaryHash(unifiedID string, newAddress common.Address, nonce *big.Int) (common.Hash, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return common.Hash{}, err
	}
	return packedHash(stringAddressArgs, nonce, unifiedID, newAddress)
}

// AddSecondaryHash returns the packed digest for binding secondaryAddress to
// unifiedID. The same digest is signed independently by the primary and the
// secondary wallet.
func AddSecondaryHash(unifiedID string, secondaryAddress common.Address, nonce *big.Int) (common.Hash, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return common.Hash{}, err
	}
	return packedHash(stringAddressArgs, nonce, unifiedID, secondaryAddress)
}

// RemoveSecondaryHash returns the packed digest for unbinding
// secondaryAddress from unifiedID.
func RemoveSecondaryHash(unifiedID string, secondaryAddress common.Address, nonce *big.Int) (common.Hash, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return common.Hash{}, err
	}
	return packedHash(stringAddressArgs, nonce, unifiedID, secondaryAddress)
}

// UpdateIdentifierHash returns the packed digest for renaming oldUnifiedID to
// newUnifiedID.
func UpdateIdentifierHash(oldUnifiedID, newUnifiedID string, nonce *big.Int) (common.Hash, error) {
	if err := checkUnifiedID("oldUnifiedId", oldUnifiedID); err != nil {
		return common.Hash{}, err
	}
	if err := checkUnifiedID("newUnifiedId", newUnifiedID); err != nil {
		return common.Hash{}, err
	}
	if oldUnifiedID == newUnifiedID {
		return common.Hash{}, errs.NewValidation("newUnifiedId", "old and new identifiers cannot be the same")
	}
	return packedHash(stringStringArgs, nonce, oldUnifiedID, newUnifiedID)
}

// PersonalDigest applies the EIP-191 personal-message prefix to a 32-byte
// digest and re-hashes: keccak256("\x19Ethereum Signed Message:\n32" || hash).
// This is the value ECDSA actually signs for the packed family.
func PersonalDigest(hash common.Hash) common.Hash {
	return crypto.Keccak256Hash(HashPrefix32Bytes, hash.Bytes())
}

// OptionsBlob ABI-encodes (nonce, deadline) as two uint256 words and returns
// the 0x-prefixed hex blob attached to every write payload. The relayer and
// the contracts decode the two fields positionally.
func OptionsBlob(nonce, deadline *big.Int) (string, error) {
	if nonce == nil || nonce.Sign() < 0 {
		return "", errs.NewValidation("nonce", "nonce is required and must be non-negative")
	}
	if deadline == nil || deadline.Sign() <= 0 {
		return "", errs.NewValidation("deadline", "deadline is required and must be positive")
	}
	blob, err := optionsArgs.Pack(nonce, deadline)
	if err != nil {
		return "", errs.NewValidation("options", err.Error())
	}
	return hexutil.Encode(blob), nil
}
