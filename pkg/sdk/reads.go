package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
)

// parseAddress validates a caller-supplied hex address before any network
// call; equality checks downstream operate on the normalized form.
func parseAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, errs.NewValidation(field, "address is required")
	}
	if !model.IsValidAddress(s) {
		return common.Address{}, errs.NewValidation(field, "not a valid address: "+s)
	}
	return common.HexToAddress(s), nil
}

func (c *Core) IdentifierExistsOnMother(ctx context.Context, id string) (model.MotherRecord, error) {
	return c.evm.IdentifierExistsOnMother(ctx, id)
}

func (c *Core) IdentifierExistsOnChild(ctx context.Context, id string) (bool, error) {
	return c.evm.IdentifierExistsOnChild(ctx, id)
}

func (c *Core) IsIdentifierRegistered(ctx context.Context, id string) (bool, error) {
	return c.evm.IsIdentifierRegistered(ctx, id)
}

func (c *Core) GetMasterWallet(ctx context.Context, id string) (common.Address, error) {
	return c.evm.GetMasterWallet(ctx, id)
}

func (c *Core) GetPrimaryWallet(ctx context.Context, id string) (common.Address, error) {
	return c.evm.GetPrimaryWallet(ctx, id)
}

func (c *Core) GetSecondaryWallets(ctx context.Context, id string) ([]common.Address, error) {
	return c.evm.GetSecondaryWallets(ctx, id)
}

func (c *Core) AddressPresentOnChild(ctx context.Context, address string) (bool, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return false, err
	}
	return c.evm.AddressPresentOnChild(ctx, addr)
}

func (c *Core) AddressInUseForIdentifier(ctx context.Context, id, address string) (bool, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return false, err
	}
	return c.evm.AddressInUseForIdentifier(ctx, id, addr)
}

func (c *Core) ResolveAddressRole(ctx context.Context, address string) (model.AddressRole, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return model.AddressRole{}, err
	}
	return c.evm.ResolveAddressRole(ctx, addr)
}

func (c *Core) IsPrimaryAddressRegistered(ctx context.Context, address string) (bool, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return false, err
	}
	return c.evm.IsPrimaryAddressRegistered(ctx, addr)
}

func (c *Core) IsSecondaryAddressRegistered(ctx context.Context, address string) (bool, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return false, err
	}
	return c.evm.IsSecondaryAddressRegistered(ctx, addr)
}

func (c *Core) GetIdentifierByPrimaryAddress(ctx context.Context, address string) (string, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return "", err
	}
	return c.evm.GetIdentifierByPrimaryAddress(ctx, addr, c.cfg.ChainID)
}

func (c *Core) ValidateChainData(ctx context.Context, id string) (model.ChainData, error) {
	return c.evm.ValidateChainData(ctx, id, c.cfg.ChainID)
}

func (c *Core) IsSecondaryAlreadyBoundOnMother(ctx context.Context, id, address string) (bool, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return false, err
	}
	return c.evm.IsSecondaryAlreadyBoundOnMother(ctx, id, c.cfg.ChainID, addr)
}

func (c *Core) IsPrimaryAlreadyInUseOnMother(ctx context.Context, address string) (bool, error) {
	addr, err := parseAddress("address", address)
	if err != nil {
		return false, err
	}
	return c.evm.IsPrimaryAlreadyInUseOnMother(ctx, c.cfg.ChainID, addr)
}

func (c *Core) GetRegistrationFee(ctx context.Context, token string, baseFeeWei *big.Int) (*big.Int, error) {
	return c.evm.GetRegistrationFee(ctx, token, baseFeeWei)
}

func (c *Core) VerifySignatureOnChain(ctx context.Context, data common.Hash, expectedSigner string, signature []byte) (bool, error) {
	addr, err := parseAddress("expectedSigner", expectedSigner)
	if err != nil {
		return false, err
	}
	return c.evm.VerifySignatureOnChain(ctx, data, addr, signature)
}

func (c *Core) GetNonce(ctx context.Context, id string) (*big.Int, error) {
	return c.evm.GetNonce(ctx, id)
}

// Health checks relayer liveness via GET /health.
func (c *Core) Health(ctx context.Context) (map[string]any, error) {
	return c.relay.Health(ctx)
}

// Ping checks relayer liveness via GET /ping.
func (c *Core) Ping(ctx context.Context) (map[string]any, error) {
	return c.relay.Ping(ctx)
}
