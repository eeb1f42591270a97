// Package builder assembles fully signed, ready-to-submit relayer payloads
// for the five unified-ID operations. Each operation supports two calling
// conventions: pre-signed (the caller supplies finished signatures and the
// builder validates shape and serializes) and auto-signed (the builder reads
// the fresh nonce, computes the canonical digest and drives one or two
// Signers). All parameter validation happens before any network or signer
// call and fails with a ValidationError naming the offending field.
package builder

import (
	"bytes"
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/blockchain"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/encoding"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/relayer"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/signer"
)

// Observer receives lifecycle notifications around relayer submission. All
// methods are optional hooks for instrumentation; the builder itself holds no
// state between calls.
type Observer interface {
	OperationStarted(action string)
	OperationCompleted(action string, result model.Result)
	OperationFailed(action string, err error)
}

// Builder combines the chain reader, the canonical encoder and the relayer
// client into per-operation payload assembly.
type Builder struct {
	evm            *blockchain.EVMClient
	relay          *relayer.Client
	chainID        uint64
	deadlineOffset time.Duration
	observer       Observer
	now            func() time.Time
}

// New constructs a Builder for the given chain. deadlineOffset is added to
// the current time to form every payload's deadline; zero means one hour.
func New(evm *blockchain.EVMClient, relay *relayer.Client, chainID uint64, deadlineOffset time.Duration) *Builder {
	if deadlineOffset == 0 {
		deadlineOffset = time.Hour
	}
	return &Builder{
		evm:            evm,
		relay:          relay,
		chainID:        chainID,
		deadlineOffset: deadlineOffset,
		now:            time.Now,
	}
}

// WithObserver attaches a lifecycle observer and returns the builder.
func (b *Builder) WithObserver(o Observer) *Builder {
	b.observer = o
	return b
}

// freshNonce reads the identifier's current nonce unless the caller pinned
// one (pre-signed convention, where the signature already covers a nonce).
func (b *Builder) freshNonce(ctx context.Context, id string, pinned *big.Int) (*big.Int, error) {
	if pinned != nil {
		return pinned, nil
	}
	return b.evm.GetNonce(ctx, id)
}

// options computes the deadline and packs the (nonce, deadline) blob.
func (b *Builder) options(nonce *big.Int) (string, *big.Int, error) {
	deadline := big.NewInt(b.now().Add(b.deadlineOffset).Unix())
	blob, err := encoding.OptionsBlob(nonce, deadline)
	if err != nil {
		return "", nil, err
	}
	return blob, deadline, nil
}

// Submit posts a built payload to the relayer, notifying the observer around
// the call. Expected relayer failures come back inside the Result; only
// transport-class errors are returned as Go errors.
func (b *Builder) Submit(ctx context.Context, action string, payload any) (model.Result, error) {
	if b.observer != nil {
		b.observer.OperationStarted(action)
	}
	result, err := b.relay.Submit(ctx, action, payload)
	if err != nil {
		if b.observer != nil {
			b.observer.OperationFailed(action, err)
		}
		return model.Result{}, err
	}
	if b.observer != nil {
		b.observer.OperationCompleted(action, result)
	}
	return result, nil
}

func checkUnifiedID(field, id string) error {
	if !model.IsValidUnifiedID(id) {
		return errs.NewValidation(field, "must be 3-64 characters of letters, digits, underscore or hyphen")
	}
	return nil
}

func checkAddress(field, addr string) error {
	if addr == "" {
		return errs.NewValidation(field, "address is required")
	}
	if !model.IsValidAddress(addr) {
		return errs.NewValidation(field, "not a valid address: "+addr)
	}
	return nil
}

func checkSignature(field string, sig []byte) error {
	if len(sig) == 0 {
		return errs.NewValidation(field, "signature is required")
	}
	if len(sig) != signer.SignatureLength {
		return errs.NewValidation(field, "signature must be 65 bytes")
	}
	if bytes.Equal(sig, make([]byte, signer.SignatureLength)) {
		return errs.NewValidation(field, "signature must not be all zeroes")
	}
	return nil
}

// RegisterParams carries a pre-signed register operation. MasterSignature is
// optional when the master and primary wallet are the same party. Nonce pins
// the nonce the signatures were produced over; nil reads fresh.
type RegisterParams struct {
	UnifiedID        string
	UserAddress      string
	MasterSignature  []byte
	PrimarySignature []byte
	Nonce            *big.Int
}

// BuildRegister validates a pre-signed register operation and serializes the
// relayer payload.
func (b *Builder) BuildRegister(ctx context.Context, p RegisterParams) (*model.RegisterRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if err := checkAddress("userAddress", p.UserAddress); err != nil {
		return nil, err
	}
	if err := checkSignature("primarySignature", p.PrimarySignature); err != nil {
		return nil, err
	}
	if len(p.MasterSignature) > 0 {
		if err := checkSignature("masterSignature", p.MasterSignature); err != nil {
			return nil, err
		}
	}

	nonce, err := b.freshNonce(ctx, p.UnifiedID, p.Nonce)
	if err != nil {
		return nil, err
	}
	blob, _, err := b.options(nonce)
	if err != nil {
		return nil, err
	}

	req := &model.RegisterRequest{
		Action:           relayer.ActionRegister,
		UnifiedID:        p.UnifiedID,
		UserAddress:      common.HexToAddress(p.UserAddress).Hex(),
		Nonce:            nonce.String(),
		ChainID:          b.chainID,
		PrimarySignature: signer.SigToHex(p.PrimarySignature),
		Options:          blob,
	}
	if len(p.MasterSignature) > 0 {
		req.MasterSignature = signer.SigToHex(p.MasterSignature)
	}
	return req, nil
}

// RegisterSignParams carries an auto-signed register operation. Master is
// optional; UserAddress defaults to the primary signer's address.
type RegisterSignParams struct {
	UnifiedID   string
	UserAddress string
	Master      signer.Signer
	Primary     signer.Signer
}

// BuildRegisterSigned reads the fresh nonce, computes the packed register
// digest and drives the signer(s) to produce the payload.
func (b *Builder) BuildRegisterSigned(ctx context.Context, p RegisterSignParams) (*model.RegisterRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if p.Primary == nil {
		return nil, errs.NewValidation("primarySigner", "a primary signer is required")
	}
	userAddress := p.UserAddress
	if userAddress == "" {
		userAddress = p.Primary.Address().Hex()
	}
	if err := checkAddress("userAddress", userAddress); err != nil {
		return nil, err
	}

	nonce, err := b.evm.GetNonce(ctx, p.UnifiedID)
	if err != nil {
		return nil, err
	}
	hash, err := encoding.RegisterHash(p.UnifiedID, common.HexToAddress(userAddress), nonce)
	if err != nil {
		return nil, err
	}

	primarySig, err := p.Primary.SignPersonal(hash)
	if err != nil {
		return nil, err
	}
	var masterSig []byte
	if p.Master != nil {
		if masterSig, err = p.Master.SignPersonal(hash); err != nil {
			return nil, err
		}
	}
	zap.L().Debug("register payload signed", zap.String("unifiedId", p.UnifiedID), zap.String("digest", hash.Hex()))

	return b.BuildRegister(ctx, RegisterParams{
		UnifiedID:        p.UnifiedID,
		UserAddress:      userAddress,
		MasterSignature:  masterSig,
		PrimarySignature: primarySig,
		Nonce:            nonce,
	})
}

// AddSecondaryParams carries a pre-signed add-secondary operation. Both the
// primary and the secondary wallet must have signed the same packed digest.
type AddSecondaryParams struct {
	UnifiedID          string
	SecondaryAddress   string
	PrimarySignature   []byte
	SecondarySignature []byte
	Nonce              *big.Int
}

// BuildAddSecondary validates a pre-signed add-secondary operation and
// serializes the relayer payload.
func (b *Builder) BuildAddSecondary(ctx context.Context, p AddSecondaryParams) (*model.AddSecondaryRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if err := checkAddress("secondaryAddress", p.SecondaryAddress); err != nil {
		return nil, err
	}
	if err := checkSignature("primarySignature", p.PrimarySignature); err != nil {
		return nil, err
	}
	if err := checkSignature("secondarySignature", p.SecondarySignature); err != nil {
		return nil, err
	}

	nonce, err := b.freshNonce(ctx, p.UnifiedID, p.Nonce)
	if err != nil {
		return nil, err
	}
	blob, _, err := b.options(nonce)
	if err != nil {
		return nil, err
	}

	return &model.AddSecondaryRequest{
		Action:             relayer.ActionAddSecondary,
		UnifiedID:          p.UnifiedID,
		SecondaryAddress:   common.HexToAddress(p.SecondaryAddress).Hex(),
		Nonce:              nonce.String(),
		ChainID:            b.chainID,
		PrimarySignature:   signer.SigToHex(p.PrimarySignature),
		SecondarySignature: signer.SigToHex(p.SecondarySignature),
		Options:            blob,
	}, nil
}

// AddSecondarySignParams carries an auto-signed add-secondary operation. The
// secondary address defaults to the secondary signer's address.
type AddSecondarySignParams struct {
	UnifiedID        string
	SecondaryAddress string
	Primary          signer.Signer
	Secondary        signer.Signer
}

// BuildAddSecondarySigned computes the packed digest once and has both
// wallets sign it independently, as the contract requires.
func (b *Builder) BuildAddSecondarySigned(ctx context.Context, p AddSecondarySignParams) (*model.AddSecondaryRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if p.Primary == nil {
		return nil, errs.NewValidation("primarySigner", "a primary signer is required")
	}
	if p.Secondary == nil {
		return nil, errs.NewValidation("secondarySigner", "a secondary signer is required")
	}
	secondaryAddress := p.SecondaryAddress
	if secondaryAddress == "" {
		secondaryAddress = p.Secondary.Address().Hex()
	}
	if err := checkAddress("secondaryAddress", secondaryAddress); err != nil {
		return nil, err
	}

	nonce, err := b.evm.GetNonce(ctx, p.UnifiedID)
	if err != nil {
		return nil, err
	}
	hash, err := encoding.AddSecondaryHash(p.UnifiedID, common.HexToAddress(secondaryAddress), nonce)
	if err != nil {
		return nil, err
	}

	primarySig, err := p.Primary.SignPersonal(hash)
	if err != nil {
		return nil, err
	}
	secondarySig, err := p.Secondary.SignPersonal(hash)
	if err != nil {
		return nil, err
	}

	return b.BuildAddSecondary(ctx, AddSecondaryParams{
		UnifiedID:          p.UnifiedID,
		SecondaryAddress:   secondaryAddress,
		PrimarySignature:   primarySig,
		SecondarySignature: secondarySig,
		Nonce:              nonce,
	})
}

// RemoveSecondaryParams carries a pre-signed remove-secondary operation.
type RemoveSecondaryParams struct {
	UnifiedID        string
	SecondaryAddress string
	Signature        []byte
	Nonce            *big.Int
}

// BuildRemoveSecondary validates a pre-signed remove-secondary operation and
// serializes the relayer payload.
func (b *Builder) BuildRemoveSecondary(ctx context.Context, p RemoveSecondaryParams) (*model.RemoveSecondaryRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if err := checkAddress("secondaryAddress", p.SecondaryAddress); err != nil {
		return nil, err
	}
	if err := checkSignature("signature", p.Signature); err != nil {
		return nil, err
	}

	nonce, err := b.freshNonce(ctx, p.UnifiedID, p.Nonce)
	if err != nil {
		return nil, err
	}
	blob, _, err := b.options(nonce)
	if err != nil {
		return nil, err
	}

	return &model.RemoveSecondaryRequest{
		Action:           relayer.ActionRemoveSecondary,
		UnifiedID:        p.UnifiedID,
		SecondaryAddress: common.HexToAddress(p.SecondaryAddress).Hex(),
		Nonce:            nonce.String(),
		ChainID:          b.chainID,
		Signature:        signer.SigToHex(p.Signature),
		Options:          blob,
	}, nil
}

// RemoveSecondarySignParams carries an auto-signed remove-secondary
// operation.
type RemoveSecondarySignParams struct {
	UnifiedID        string
	SecondaryAddress string
	Signer           signer.Signer
}

// BuildRemoveSecondarySigned reads the fresh nonce, computes the packed
// digest and signs it.
func (b *Builder) BuildRemoveSecondarySigned(ctx context.Context, p RemoveSecondarySignParams) (*model.RemoveSecondaryRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if err := checkAddress("secondaryAddress", p.SecondaryAddress); err != nil {
		return nil, err
	}
	if p.Signer == nil {
		return nil, errs.NewValidation("signer", "a signer is required")
	}

	nonce, err := b.evm.GetNonce(ctx, p.UnifiedID)
	if err != nil {
		return nil, err
	}
	hash, err := encoding.RemoveSecondaryHash(p.UnifiedID, common.HexToAddress(p.SecondaryAddress), nonce)
	if err != nil {
		return nil, err
	}
	sig, err := p.Signer.SignPersonal(hash)
	if err != nil {
		return nil, err
	}

	return b.BuildRemoveSecondary(ctx, RemoveSecondaryParams{
		UnifiedID:        p.UnifiedID,
		SecondaryAddress: p.SecondaryAddress,
		Signature:        sig,
		Nonce:            nonce,
	})
}

// ChangePrimaryParams carries a pre-signed change-primary operation.
// CurrentAddress is required so the current/new equality rule can be enforced
// even though only the new address goes on the wire.
type ChangePrimaryParams struct {
	UnifiedID               string
	CurrentAddress          string
	NewAddress              string
	CurrentPrimarySignature []byte
	NewPrimarySignature     []byte
	Nonce                   *big.Int
}

// BuildChangePrimary validates a pre-signed change-primary operation and
// serializes the relayer payload.
func (b *Builder) BuildChangePrimary(ctx context.Context, p ChangePrimaryParams) (*model.ChangePrimaryRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if err := checkAddress("currentAddress", p.CurrentAddress); err != nil {
		return nil, err
	}
	if err := checkAddress("newAddress", p.NewAddress); err != nil {
		return nil, err
	}
	if common.HexToAddress(p.CurrentAddress) == common.HexToAddress(p.NewAddress) {
		return nil, errs.NewValidation("newAddress", "current and new addresses cannot be the same")
	}
	if err := checkSignature("currentPrimarySignature", p.CurrentPrimarySignature); err != nil {
		return nil, err
	}
	if err := checkSignature("newPrimarySignature", p.NewPrimarySignature); err != nil {
		return nil, err
	}

	nonce, err := b.freshNonce(ctx, p.UnifiedID, p.Nonce)
	if err != nil {
		return nil, err
	}
	blob, _, err := b.options(nonce)
	if err != nil {
		return nil, err
	}

	return &model.ChangePrimaryRequest{
		Action:                  relayer.ActionChangePrimary,
		UnifiedID:               p.UnifiedID,
		NewAddress:              common.HexToAddress(p.NewAddress).Hex(),
		Nonce:                   nonce.String(),
		ChainID:                 b.chainID,
		CurrentPrimarySignature: signer.SigToHex(p.CurrentPrimarySignature),
		NewPrimarySignature:     signer.SigToHex(p.NewPrimarySignature),
		Options:                 blob,
	}, nil
}

// ChangePrimarySignParams carries an auto-signed change-primary operation.
// The addresses are derived from the two signers.
type ChangePrimarySignParams struct {
	UnifiedID string
	Current   signer.Signer
	New       signer.Signer
}

// BuildChangePrimarySigned computes the packed digest over the new address
// and has both the outgoing and the incoming primary sign it.
func (b *Builder) BuildChangePrimarySigned(ctx context.Context, p ChangePrimarySignParams) (*model.ChangePrimaryRequest, error) {
	if err := checkUnifiedID("unifiedId", p.UnifiedID); err != nil {
		return nil, err
	}
	if p.Current == nil {
		return nil, errs.NewValidation("currentSigner", "the current primary's signer is required")
	}
	if p.New == nil {
		return nil, errs.NewValidation("newSigner", "the new primary's signer is required")
	}
	if p.Current.Address() == p.New.Address() {
		return nil, errs.NewValidation("newSigner", "current and new addresses cannot be the same")
	}

	nonce, err := b.evm.GetNonce(ctx, p.UnifiedID)
	if err != nil {
		return nil, err
	}
	newAddress := p.New.Address()
	hash, err := encoding.ChangePrimaryHash(p.UnifiedID, newAddress, nonce)
	if err != nil {
		return nil, err
	}

	currentSig, err := p.Current.SignPersonal(hash)
	if err != nil {
		return nil, err
	}
	newSig, err := p.New.SignPersonal(hash)
	if err != nil {
		return nil, err
	}

	return b.BuildChangePrimary(ctx, ChangePrimaryParams{
		UnifiedID:               p.UnifiedID,
		CurrentAddress:          p.Current.Address().Hex(),
		NewAddress:              newAddress.Hex(),
		CurrentPrimarySignature: currentSig,
		NewPrimarySignature:     newSig,
		Nonce:                   nonce,
	})
}

// UpdateIdentifierParams carries a pre-signed identifier rename.
type UpdateIdentifierParams struct {
	OldUnifiedID string
	NewUnifiedID string
	Signature    []byte
	Nonce        *big.Int
}

// BuildUpdateIdentifier validates a pre-signed identifier rename and
// serializes the relayer payload.
func (b *Builder) BuildUpdateIdentifier(ctx context.Context, p UpdateIdentifierParams) (*model.UpdateIdentifierRequest, error) {
	if err := checkUnifiedID("oldUnifiedId", p.OldUnifiedID); err != nil {
		return nil, err
	}
	if err := checkUnifiedID("newUnifiedId", p.NewUnifiedID); err != nil {
		return nil, err
	}
	if p.OldUnifiedID == p.NewUnifiedID {
		return nil, errs.NewValidation("newUnifiedId", "old and new identifiers cannot be the same")
	}
	if err := checkSignature("signature", p.Signature); err != nil {
		return nil, err
	}

	nonce, err := b.freshNonce(ctx, p.OldUnifiedID, p.Nonce)
	if err != nil {
		return nil, err
	}
	blob, _, err := b.options(nonce)
	if err != nil {
		return nil, err
	}

	return &model.UpdateIdentifierRequest{
		Action:       relayer.ActionUpdateUnifiedID,
		OldUnifiedID: p.OldUnifiedID,
		NewUnifiedID: p.NewUnifiedID,
		Nonce:        nonce.String(),
		ChainID:      b.chainID,
		Signature:    signer.SigToHex(p.Signature),
		Options:      blob,
	}, nil
}

// UpdateIdentifierSignParams carries an auto-signed identifier rename.
type UpdateIdentifierSignParams struct {
	OldUnifiedID string
	NewUnifiedID string
	Signer       signer.Signer
}

// BuildUpdateIdentifierSigned reads the fresh nonce, computes the packed
// digest over (old, new) and signs it.
func (b *Builder) BuildUpdateIdentifierSigned(ctx context.Context, p UpdateIdentifierSignParams) (*model.UpdateIdentifierRequest, error) {
	if err := checkUnifiedID("oldUnifiedId", p.OldUnifiedID); err != nil {
		return nil, err
	}
	if err := checkUnifiedID("newUnifiedId", p.NewUnifiedID); err != nil {
		return nil, err
	}
	if p.OldUnifiedID == p.NewUnifiedID {
		return nil, errs.NewValidation("newUnifiedId", "old and new identifiers cannot be the same")
	}
	if p.Signer == nil {
		return nil, errs.NewValidation("signer", "a signer is required")
	}

	nonce, err := b.evm.GetNonce(ctx, p.OldUnifiedID)
	if err != nil {
		return nil, err
	}
	hash, err := encoding.UpdateIdentifierHash(p.OldUnifiedID, p.NewUnifiedID, nonce)
	if err != nil {
		return nil, err
	}
	sig, err := p.Signer.SignPersonal(hash)
	if err != nil {
		return nil, err
	}

	return b.BuildUpdateIdentifier(ctx, UpdateIdentifierParams{
		OldUnifiedID: p.OldUnifiedID,
		NewUnifiedID: p.NewUnifiedID,
		Signature:    sig,
		Nonce:        nonce,
	})
}
