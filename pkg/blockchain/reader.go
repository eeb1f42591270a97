package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
)

// zeroAddress is the unregistered sentinel used throughout the registries.
var zeroAddress common.Address

// isRevert reports whether a call error was a contract-side revert rather
// than a transport failure. Reverts on pure lookups mean "not found" and are
// mapped to sentinels by the resolution helpers.
func isRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}

// wrapCall classifies a failed read: reverts become ContractCallError, other
// failures NetworkError. op names the lookup for diagnosis.
func wrapCall(op string, err error) error {
	if isRevert(err) {
		return &errs.ContractCallError{Op: op, Err: err}
	}
	return &errs.NetworkError{Op: op, Err: err}
}

func checkUnifiedID(field, id string) error {
	if !model.IsValidUnifiedID(id) {
		return errs.NewValidation(field, "must be 3-64 characters of letters, digits, underscore or hyphen")
	}
	return nil
}

// IdentifierExistsOnMother reads the master address for id from the mother
// registry. IsValid is true iff the master address is not the zero sentinel;
// an unregistered identifier is a valid result, not an error.
func (evm *EVMClient) IdentifierExistsOnMother(ctx context.Context, id string) (model.MotherRecord, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return model.MotherRecord{}, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	master, err := evm.Mother.GetMasterAddress(callOpts(ctx), id)
	if err != nil {
		return model.MotherRecord{}, wrapCall("getMasterAddress", err)
	}
	return model.MotherRecord{IsValid: master != zeroAddress, MasterAddress: master}, nil
}

// IsIdentifierRegistered reports whether id has a master address on the
// mother registry.
func (evm *EVMClient) IsIdentifierRegistered(ctx context.Context, id string) (bool, error) {
	rec, err := evm.IdentifierExistsOnMother(ctx, id)
	if err != nil {
		return false, err
	}
	return rec.IsValid, nil
}

// GetMasterWallet returns the master address recorded for id, or the zero
// address when unregistered.
func (evm *EVMClient) GetMasterWallet(ctx context.Context, id string) (common.Address, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return common.Address{}, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	master, err := evm.Mother.GetMasterAddress(callOpts(ctx), id)
	if err != nil {
		return common.Address{}, wrapCall("getMasterAddress", err)
	}
	return master, nil
}

// GetPrimaryWallet returns the primary address bound to id on the child
// registry, or the zero address when unregistered.
func (evm *EVMClient) GetPrimaryWallet(ctx context.Context, id string) (common.Address, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return common.Address{}, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	primary, err := evm.Child.GetPrimaryAddress(callOpts(ctx), id)
	if err != nil {
		return common.Address{}, wrapCall("getPrimaryAddress", err)
	}
	return primary, nil
}

// GetSecondaryWallets returns the secondary addresses bound to id on the
// child registry. An identifier with no secondaries yields an empty slice.
func (evm *EVMClient) GetSecondaryWallets(ctx context.Context, id string) ([]common.Address, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return nil, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	secondaries, err := evm.Child.GetSecondaryAddresses(callOpts(ctx), id)
	if err != nil {
		return nil, wrapCall("getSecondaryAddresses", err)
	}
	if secondaries == nil {
		secondaries = []common.Address{}
	}
	return secondaries, nil
}

// IdentifierExistsOnChild reports whether id has any binding on the child
// registry: a non-zero primary or a non-empty secondary set.
func (evm *EVMClient) IdentifierExistsOnChild(ctx context.Context, id string) (bool, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return false, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	primary, secondaries, err := evm.Child.ResolveAllAddresses(callOpts(ctx), id)
	if err != nil {
		return false, wrapCall("resolveAllAddresses", err)
	}
	return primary != zeroAddress || len(secondaries) > 0, nil
}

// AddressPresentOnChild reports whether addr resolves to any identifier on
// the child registry.
func (evm *EVMClient) AddressPresentOnChild(ctx context.Context, addr common.Address) (bool, error) {
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	id, err := evm.Child.ResolveAddressToUnifiedID(callOpts(ctx), addr)
	if err != nil {
		if isRevert(err) {
			return false, nil
		}
		return false, wrapCall("resolveAddressToUnifiedId", err)
	}
	return id != "", nil
}

// AddressInUseForIdentifier reports whether addr is in id's secondary set on
// the child registry.
func (evm *EVMClient) AddressInUseForIdentifier(ctx context.Context, id string, addr common.Address) (bool, error) {
	secondaries, err := evm.GetSecondaryWallets(ctx, id)
	if err != nil {
		return false, err
	}
	for _, s := range secondaries {
		if s == addr {
			return true, nil
		}
	}
	return false, nil
}

// ResolveAddressRole is the authoritative role resolution for addr on the
// child registry. A revert or unknown address resolves to the zero
// AddressRole so callers can use this as a non-throwing existence probe;
// transport failures still propagate.
func (evm *EVMClient) ResolveAddressRole(ctx context.Context, addr common.Address) (model.AddressRole, error) {
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	id, isPrimary, isSecondary, err := evm.Child.ResolveAnyAddressToUnifiedID(callOpts(ctx), addr)
	if err != nil {
		if isRevert(err) {
			zap.L().Debug("address resolution reverted, treating as unknown", zap.String("address", addr.Hex()))
			return model.AddressRole{}, nil
		}
		return model.AddressRole{}, wrapCall("resolveAnyAddressToUnifiedId", err)
	}
	return model.AddressRole{UnifiedID: id, IsPrimary: isPrimary, IsSecondary: isSecondary}, nil
}

// IsPrimaryAddressRegistered reports whether addr is some identifier's
// primary wallet. Not-found is false; genuine failures propagate.
func (evm *EVMClient) IsPrimaryAddressRegistered(ctx context.Context, addr common.Address) (bool, error) {
	role, err := evm.ResolveAddressRole(ctx, addr)
	if err != nil {
		return false, err
	}
	return role.UnifiedID != "" && role.IsPrimary, nil
}

// IsSecondaryAddressRegistered reports whether addr is in some identifier's
// secondary set. Not-found is false; genuine failures propagate.
func (evm *EVMClient) IsSecondaryAddressRegistered(ctx context.Context, addr common.Address) (bool, error) {
	role, err := evm.ResolveAddressRole(ctx, addr)
	if err != nil {
		return false, err
	}
	return role.UnifiedID != "" && role.IsSecondary, nil
}

// GetIdentifierByPrimaryAddress resolves addr to its identifier for the given
// chain via the mother registry. Empty string when none.
func (evm *EVMClient) GetIdentifierByPrimaryAddress(ctx context.Context, addr common.Address, chainID uint64) (string, error) {
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	id, err := evm.Mother.ResolveAddressToUnifiedID(callOpts(ctx), addr, new(big.Int).SetUint64(chainID))
	if err != nil {
		if isRevert(err) {
			return "", nil
		}
		return "", wrapCall("resolveAddressToUnifiedId", err)
	}
	return id, nil
}

// ValidateChainData reads id's (primary, secondaries) binding for chainID
// from the mother registry. IsValid is true iff the primary is non-zero.
func (evm *EVMClient) ValidateChainData(ctx context.Context, id string, chainID uint64) (model.ChainData, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return model.ChainData{}, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	primary, secondaries, err := evm.Mother.GetChainData(callOpts(ctx), id, new(big.Int).SetUint64(chainID))
	if err != nil {
		return model.ChainData{}, wrapCall("getChainData", err)
	}
	if secondaries == nil {
		secondaries = []common.Address{}
	}
	return model.ChainData{
		Primary:     primary,
		Secondaries: secondaries,
		IsValid:     primary != zeroAddress,
	}, nil
}

// IsSecondaryAlreadyBoundOnMother reports whether addr already appears in
// id's secondary set for chainID, per the mother registry's chain data.
func (evm *EVMClient) IsSecondaryAlreadyBoundOnMother(ctx context.Context, id string, chainID uint64, addr common.Address) (bool, error) {
	data, err := evm.ValidateChainData(ctx, id, chainID)
	if err != nil {
		return false, err
	}
	for _, s := range data.Secondaries {
		if s == addr {
			return true, nil
		}
	}
	return false, nil
}

// IsPrimaryAlreadyInUseOnMother reports whether addr reverse-resolves to any
// identifier for chainID on the mother registry.
func (evm *EVMClient) IsPrimaryAlreadyInUseOnMother(ctx context.Context, chainID uint64, addr common.Address) (bool, error) {
	id, err := evm.GetIdentifierByPrimaryAddress(ctx, addr, chainID)
	if err != nil {
		return false, err
	}
	return id != "", nil
}

// GetNonce reads the current nonce for id from the mother registry. The
// primary accessor nonces(id) is tried first with a getNonce(id) fallback for
// older deployments; only if both fail is a combined error returned.
func (evm *EVMClient) GetNonce(ctx context.Context, id string) (*big.Int, error) {
	if err := checkUnifiedID("unifiedId", id); err != nil {
		return nil, err
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	nonce, primaryErr := evm.Mother.Nonces(callOpts(ctx), id)
	if primaryErr == nil {
		return nonce, nil
	}
	zap.L().Debug("nonces accessor failed, trying getNonce fallback",
		zap.String("unifiedId", id), zap.Error(primaryErr))
	nonce, fallbackErr := evm.Mother.GetNonce(callOpts(ctx), id)
	if fallbackErr == nil {
		return nonce, nil
	}
	return nil, &errs.ContractCallError{
		Op:  "getNonce",
		Err: fmt.Errorf("nonces: %v; getNonce: %v", primaryErr, fallbackErr),
	}
}

// VerifySignatureOnChain delegates signature verification to the storage-util
// contract's own recovery logic. This is the authoritative check; local
// recovery is best effort only.
func (evm *EVMClient) VerifySignatureOnChain(ctx context.Context, data common.Hash, expectedSigner common.Address, signature []byte) (bool, error) {
	if len(signature) == 0 {
		return false, errs.NewValidation("signature", "signature bytes are required")
	}
	if expectedSigner == zeroAddress {
		return false, errs.NewValidation("expectedSigner", "expected signer address is required")
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	ok, err := evm.StorageUtil.VerifySignature(callOpts(ctx), data, expectedSigner, signature)
	if err != nil {
		if isRevert(err) {
			// Recovery reverts on garbage input; the signature is simply invalid.
			return false, nil
		}
		return false, wrapCall("verifySignature", err)
	}
	return ok, nil
}

// IsUnifiedIDValidOnChain asks the storage-util contract whether id passes
// the on-chain format rules.
func (evm *EVMClient) IsUnifiedIDValidOnChain(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, errs.NewValidation("unifiedId", "identifier is required")
	}
	ctx, cancel := evm.readContext(ctx)
	defer cancel()
	ok, err := evm.StorageUtil.IsUnifiedIDValid(callOpts(ctx), id)
	if err != nil {
		return false, wrapCall("isUnifiedIdValid", err)
	}
	return ok, nil
}
