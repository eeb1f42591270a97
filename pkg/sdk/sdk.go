// Package sdk exposes the high-level unified-ID SDK entry points. It wires
// together configuration, the chain reader for the three registries, the
// signature-producing operation builders, and the relayer HTTP client into a
// single facade.
package sdk

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/blockchain"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/builder"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/config"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/relayer"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/signer"
)

// UnifiedIDSDK is the public facade. Write operations resolve to a
// model.Result for every expected failure mode (relayer rejection, stale
// nonce, signer refusal); only programmer-error validation failures come
// back as Go errors. Read operations map "not found" to sentinel values and
// return errors only for genuine transport or contract failures.
type UnifiedIDSDK interface {
	// Register submits a register operation signed by the supplied signer(s).
	Register(ctx context.Context, p builder.RegisterSignParams) (model.Result, error)
	// RegisterPreSigned submits a register operation with caller-made signatures.
	RegisterPreSigned(ctx context.Context, p builder.RegisterParams) (model.Result, error)

	// AddSecondaryAddress binds a secondary wallet; both parties sign in-process.
	AddSecondaryAddress(ctx context.Context, p builder.AddSecondarySignParams) (model.Result, error)
	// AddSecondaryAddressPreSigned submits caller-made primary+secondary signatures.
	AddSecondaryAddressPreSigned(ctx context.Context, p builder.AddSecondaryParams) (model.Result, error)

	// RemoveSecondaryAddress unbinds a secondary wallet.
	RemoveSecondaryAddress(ctx context.Context, p builder.RemoveSecondarySignParams) (model.Result, error)
	RemoveSecondaryAddressPreSigned(ctx context.Context, p builder.RemoveSecondaryParams) (model.Result, error)

	// ChangePrimaryAddress switches the primary wallet; outgoing and incoming sign.
	ChangePrimaryAddress(ctx context.Context, p builder.ChangePrimarySignParams) (model.Result, error)
	ChangePrimaryAddressPreSigned(ctx context.Context, p builder.ChangePrimaryParams) (model.Result, error)

	// UpdateUnifiedID renames an identifier.
	UpdateUnifiedID(ctx context.Context, p builder.UpdateIdentifierSignParams) (model.Result, error)
	UpdateUnifiedIDPreSigned(ctx context.Context, p builder.UpdateIdentifierParams) (model.Result, error)

	// Read-side resolution, all chain-scoped to the configured chain where
	// the registry distinguishes chains.
	IdentifierExistsOnMother(ctx context.Context, id string) (model.MotherRecord, error)
	IdentifierExistsOnChild(ctx context.Context, id string) (bool, error)
	IsIdentifierRegistered(ctx context.Context, id string) (bool, error)
	GetMasterWallet(ctx context.Context, id string) (common.Address, error)
	GetPrimaryWallet(ctx context.Context, id string) (common.Address, error)
	GetSecondaryWallets(ctx context.Context, id string) ([]common.Address, error)
	AddressPresentOnChild(ctx context.Context, address string) (bool, error)
	AddressInUseForIdentifier(ctx context.Context, id, address string) (bool, error)
	ResolveAddressRole(ctx context.Context, address string) (model.AddressRole, error)
	IsPrimaryAddressRegistered(ctx context.Context, address string) (bool, error)
	IsSecondaryAddressRegistered(ctx context.Context, address string) (bool, error)
	GetIdentifierByPrimaryAddress(ctx context.Context, address string) (string, error)
	ValidateChainData(ctx context.Context, id string) (model.ChainData, error)
	IsSecondaryAlreadyBoundOnMother(ctx context.Context, id, address string) (bool, error)
	IsPrimaryAlreadyInUseOnMother(ctx context.Context, address string) (bool, error)
	GetRegistrationFee(ctx context.Context, token string, baseFeeWei *big.Int) (*big.Int, error)
	VerifySignatureOnChain(ctx context.Context, data common.Hash, expectedSigner string, signature []byte) (bool, error)
	GetNonce(ctx context.Context, id string) (*big.Int, error)

	// Relayer liveness.
	Health(ctx context.Context) (map[string]any, error)
	Ping(ctx context.Context) (map[string]any, error)

	// DefaultSigner returns the signer derived from the configured private
	// key, or nil when none was configured.
	DefaultSigner() signer.Signer

	// Close releases resources associated with the SDK instance.
	Close()
}

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation.
type Core struct {
	cfg           *config.Config
	evm           *blockchain.EVMClient
	relay         *relayer.Client
	builder       *builder.Builder
	defaultSigner signer.Signer
}

// NewSDK validates the configuration, resolves the registry addresses for
// the configured (environment, chainId), connects the RPC client and builds
// the relayer client. Validation failures are returned before any network
// dial is attempted.
func NewSDK(cfg *config.Config) (UnifiedIDSDK, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	addrs, err := cfg.ContractAddresses()
	if err != nil {
		return nil, err
	}

	evm, err := blockchain.InitEvm(cfg.RPCAddr, addrs.Mother, addrs.Child, addrs.StorageUtil,
		cfg.Timeouts.Dial, cfg.Timeouts.ChainRead)
	if err != nil {
		zap.L().Error("Init ethereum client failed", zap.Error(err))
		return nil, err
	}

	return newCore(cfg, evm), nil
}

// newCore finishes construction from a validated config and a bound EVM
// client. Split out so tests can inject a fake backend.
func newCore(cfg *config.Config, evm *blockchain.EVMClient) *Core {
	relay := relayer.New(cfg.BaseURL, cfg.AuthToken, cfg.Timeouts.Relayer)

	core := &Core{
		cfg:     cfg,
		evm:     evm,
		relay:   relay,
		builder: builder.New(evm, relay, cfg.ChainID, cfg.DeadlineOffset),
	}

	if cfg.PrivateKey != "" {
		s, err := signer.NewKeyMaterialSigner(cfg.PrivateKey)
		if err != nil {
			zap.L().Warn("auto-signed operations disabled: private key parsing failed", zap.Error(err))
		} else {
			core.defaultSigner = s
			if cfg.Debug {
				zap.L().Debug("default signer address", zap.String("addr", s.Address().Hex()))
			}
		}
	}
	return core
}

// WithObserver attaches an operation lifecycle observer.
func (c *Core) WithObserver(o builder.Observer) *Core {
	c.builder.WithObserver(o)
	return c
}

// DefaultSigner returns the signer derived from the configured private key,
// or nil.
func (c *Core) DefaultSigner() signer.Signer { return c.defaultSigner }

// Builder exposes the underlying operation builder for callers that want the
// payloads without submitting them.
func (c *Core) Builder() *builder.Builder { return c.builder }

// Evm exposes the chain reader for advanced read operations.
func (c *Core) Evm() *blockchain.EVMClient { return c.evm }

// resolve folds expected failures into a Result and lets programmer errors
// through. Validation failures are the caller's bug and are returned as
// errors; everything else (signer refusal, transport failure, contract
// revert, relayer rejection) resolves to Success=false.
func resolve(result model.Result, err error) (model.Result, error) {
	if err == nil {
		return result, nil
	}
	var vErr *errs.ValidationError
	if errors.As(err, &vErr) {
		return model.Result{}, err
	}
	zap.L().Debug("operation resolved to failure", zap.Error(err))
	return model.Result{Success: false, Error: err.Error()}, nil
}

func (c *Core) Register(ctx context.Context, p builder.RegisterSignParams) (model.Result, error) {
	if p.Primary == nil && c.defaultSigner != nil {
		p.Primary = c.defaultSigner
	}
	payload, err := c.builder.BuildRegisterSigned(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionRegister, payload))
}

func (c *Core) RegisterPreSigned(ctx context.Context, p builder.RegisterParams) (model.Result, error) {
	payload, err := c.builder.BuildRegister(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionRegister, payload))
}

func (c *Core) AddSecondaryAddress(ctx context.Context, p builder.AddSecondarySignParams) (model.Result, error) {
	if p.Primary == nil && c.defaultSigner != nil {
		p.Primary = c.defaultSigner
	}
	payload, err := c.builder.BuildAddSecondarySigned(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionAddSecondary, payload))
}

func (c *Core) AddSecondaryAddressPreSigned(ctx context.Context, p builder.AddSecondaryParams) (model.Result, error) {
	payload, err := c.builder.BuildAddSecondary(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionAddSecondary, payload))
}

func (c *Core) RemoveSecondaryAddress(ctx context.Context, p builder.RemoveSecondarySignParams) (model.Result, error) {
	if p.Signer == nil && c.defaultSigner != nil {
		p.Signer = c.defaultSigner
	}
	payload, err := c.builder.BuildRemoveSecondarySigned(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionRemoveSecondary, payload))
}

func (c *Core) RemoveSecondaryAddressPreSigned(ctx context.Context, p builder.RemoveSecondaryParams) (model.Result, error) {
	payload, err := c.builder.BuildRemoveSecondary(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionRemoveSecondary, payload))
}

func (c *Core) ChangePrimaryAddress(ctx context.Context, p builder.ChangePrimarySignParams) (model.Result, error) {
	if p.Current == nil && c.defaultSigner != nil {
		p.Current = c.defaultSigner
	}
	payload, err := c.builder.BuildChangePrimarySigned(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionChangePrimary, payload))
}

func (c *Core) ChangePrimaryAddressPreSigned(ctx context.Context, p builder.ChangePrimaryParams) (model.Result, error) {
	payload, err := c.builder.BuildChangePrimary(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionChangePrimary, payload))
}

func (c *Core) UpdateUnifiedID(ctx context.Context, p builder.UpdateIdentifierSignParams) (model.Result, error) {
	if p.Signer == nil && c.defaultSigner != nil {
		p.Signer = c.defaultSigner
	}
	payload, err := c.builder.BuildUpdateIdentifierSigned(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionUpdateUnifiedID, payload))
}

func (c *Core) UpdateUnifiedIDPreSigned(ctx context.Context, p builder.UpdateIdentifierParams) (model.Result, error) {
	payload, err := c.builder.BuildUpdateIdentifier(ctx, p)
	if err != nil {
		return resolve(model.Result{}, err)
	}
	return resolve(c.builder.Submit(ctx, relayer.ActionUpdateUnifiedID, payload))
}

// Close shuts down the underlying RPC connection.
func (c *Core) Close() {
	c.evm.Close()
}
