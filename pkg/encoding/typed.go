package encoding

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
)

// Variant selects the encoding family for an operation. Packed is the
// personal-message path; the two typed variants are EIP-712 with and without
// the targetChainId field.
type Variant string

const (
	VariantPacked        Variant = "packed"
	VariantTypedLegacy   Variant = "typedLegacy"
	VariantTypedEnhanced Variant = "typedEnhanced"
)

// Typed-data domain constants shared by every operation.
const (
	DomainName    = "UnifiedID"
	DomainVersion = "1"
)

// TypedParams carries the domain and replay-protection fields common to every
// typed-data operation. TargetChainID is only consulted by the enhanced
// variant and must equal ChainID.
type TypedParams struct {
	Variant           Variant
	ChainID           uint64
	VerifyingContract common.Address
	Nonce             *big.Int
	Deadline          *big.Int
	TargetChainID     uint64
}

func (p TypedParams) validate() error {
	switch p.Variant {
	case VariantTypedLegacy, VariantTypedEnhanced:
	default:
		return errs.NewValidation("variant", fmt.Sprintf("%q is not a typed-data variant", p.Variant))
	}
	if p.ChainID == 0 {
		return errs.NewValidation("chainId", "chain ID is required")
	}
	var zero common.Address
	if p.VerifyingContract == zero {
		return errs.NewValidation("verifyingContract", "mother registry address is required")
	}
	if p.Nonce == nil || p.Nonce.Sign() < 0 {
		return errs.NewValidation("nonce", "nonce is required and must be non-negative")
	}
	if p.Deadline == nil || p.Deadline.Sign() <= 0 {
		return errs.NewValidation("deadline", "deadline is required and must be positive")
	}
	if p.Variant == VariantTypedEnhanced && p.TargetChainID != p.ChainID {
		return errs.NewValidation("targetChainId",
			fmt.Sprintf("must equal the domain chain ID (%d != %d); cross-chain signature reuse is not supported", p.TargetChainID, p.ChainID))
	}
	return nil
}

// newTypedData assembles the full EIP-712 structure: the shared domain, the
// operation message type extended with nonce/deadline (and targetChainId for
// the enhanced variant), and the message values.
func newTypedData(p TypedParams, primaryType string, fields []apitypes.Type, message apitypes.TypedDataMessage) (apitypes.TypedData, error) {
	if err := p.validate(); err != nil {
		return apitypes.TypedData{}, err
	}

	fields = append(fields,
		apitypes.Type{Name: "nonce", Type: "uint256"},
		apitypes.Type{Name: "deadline", Type: "uint256"},
	)
	message["nonce"] = (*math.HexOrDecimal256)(p.Nonce)
	message["deadline"] = (*math.HexOrDecimal256)(p.Deadline)
	if p.Variant == VariantTypedEnhanced {
		fields = append(fields, apitypes.Type{Name: "targetChainId", Type: "uint256"})
		message["targetChainId"] = math.NewHexOrDecimal256(int64(p.TargetChainID))
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			primaryType: fields,
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              DomainName,
			Version:           DomainVersion,
			ChainId:           math.NewHexOrDecimal256(int64(p.ChainID)),
			VerifyingContract: p.VerifyingContract.Hex(),
		},
		Message: message,
	}, nil
}

// RegisterTypedData builds the EIP-712 structure for registering unifiedID to
// userAddress.
func RegisterTypedData(p TypedParams, unifiedID string, userAddress common.Address) (apitypes.TypedData, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return apitypes.TypedData{}, err
	}
	return newTypedData(p, "Register", []apitypes.Type{
		{Name: "unifiedId", Type: "string"},
		{Name: "userAddress", Type: "address"},
	}, apitypes.TypedDataMessage{
		"unifiedId":   unifiedID,
		"userAddress": userAddress.Hex(),
	})
}

// ChangePrimaryTypedData builds the EIP-712 structure for switching
// unifiedID's primary wallet to newAddress.
func ChangePrimaryTypedData(p TypedParams, unifiedID string, newAddress common.Address) (apitypes.TypedData, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return apitypes.TypedData{}, err
	}
	return newTypedData(p, "ChangePrimary", []apitypes.Type{
		{Name: "unifiedId", Type: "string"},
		{Name: "newAddress", Type: "address"},
	}, apitypes.TypedDataMessage{
		"unifiedId":  unifiedID,
		"newAddress": newAddress.Hex(),
	})
}

// AddSecondaryTypedData builds the EIP-712 structure for binding
// secondaryAddress to unifiedID. Both parties sign the same structure.
func AddSecondaryTypedData(p TypedParams, unifiedID string, secondaryAddress common.Address) (apitypes.TypedData, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return apitypes.TypedData{}, err
	}
	return newTypedData(p, "AddSecondary", []apitypes.Type{
		{Name: "unifiedId", Type: "string"},
		{Name: "secondaryAddress", Type: "address"},
	}, apitypes.TypedDataMessage{
		"unifiedId":        unifiedID,
		"secondaryAddress": secondaryAddress.Hex(),
	})
}

// RemoveSecondaryTypedData builds the EIP-712 structure for unbinding
// secondaryAddress from unifiedID.
func RemoveSecondaryTypedData(p TypedParams, unifiedID string, secondaryAddress common.Address) (apitypes.TypedData, error) {
	if err := checkUnifiedID("unifiedId", unifiedID); err != nil {
		return apitypes.TypedData{}, err
	}
	return newTypedData(p, "RemoveSecondary", []apitypes.Type{
		{Name: "unifiedId", Type: "string"},
		{Name: "secondaryAddress", Type: "address"},
	}, apitypes.TypedDataMessage{
		"unifiedId":        unifiedID,
		"secondaryAddress": secondaryAddress.Hex(),
	})
}

// UpdateIdentifierTypedData builds the EIP-712 structure for renaming
// oldUnifiedID to newUnifiedID.
func UpdateIdentifierTypedData(p TypedParams, oldUnifiedID, newUnifiedID string) (apitypes.TypedData, error) {
	if err := checkUnifiedID("oldUnifiedId", oldUnifiedID); err != nil {
		return apitypes.TypedData{}, err
	}
	if err := checkUnifiedID("newUnifiedId", newUnifiedID); err != nil {
		return apitypes.TypedData{}, err
	}
	if oldUnifiedID == newUnifiedID {
		return apitypes.TypedData{}, errs.NewValidation("newUnifiedId", "old and new identifiers cannot be the same")
	}
	return newTypedData(p, "UpdateUnifiedId", []apitypes.Type{
		{Name: "oldUnifiedId", Type: "string"},
		{Name: "newUnifiedId", Type: "string"},
	}, apitypes.TypedDataMessage{
		"oldUnifiedId": oldUnifiedID,
		"newUnifiedId": newUnifiedID,
	})
}

// TypedDataHash computes the final EIP-712 digest for a typed structure.
func TypedDataHash(td apitypes.TypedData) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return common.Hash{}, &errs.SignatureError{Reason: "typed data hashing failed", Err: err}
	}
	return common.BytesToHash(hash), nil
}
