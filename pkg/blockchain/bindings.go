package blockchain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Minimal read-only ABIs for the three registries. Only the view surface the
// SDK consumes is declared; state-changing methods are executed by the
// relayer, never by this client.

const motherRegistryABI = `[
	{"type":"function","name":"getMasterAddress","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"nonces","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getNonce","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getChainData","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"},{"name":"chainId","type":"uint256"}],"outputs":[{"name":"primary","type":"address"},{"name":"secondaries","type":"address[]"}]},
	{"type":"function","name":"resolveAddressToUnifiedId","stateMutability":"view","inputs":[{"name":"addr","type":"address"},{"name":"chainId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]}
]`

const childRegistryABI = `[
	{"type":"function","name":"getPrimaryAddress","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"getSecondaryAddresses","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"resolveAddressToUnifiedId","stateMutability":"view","inputs":[{"name":"addr","type":"address"}],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"resolveAllAddresses","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"primary","type":"address"},{"name":"secondaries","type":"address[]"}]},
	{"type":"function","name":"resolveAnyAddressToUnifiedId","stateMutability":"view","inputs":[{"name":"addr","type":"address"}],"outputs":[{"name":"unifiedId","type":"string"},{"name":"isPrimary","type":"bool"},{"name":"isSecondary","type":"bool"}]}
]`

const storageUtilABI = `[
	{"type":"function","name":"getRequiredTokenAmount","stateMutability":"view","inputs":[{"name":"token","type":"address"},{"name":"baseFee","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"verifySignature","stateMutability":"view","inputs":[{"name":"data","type":"bytes32"},{"name":"expectedSigner","type":"address"},{"name":"signature","type":"bytes"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"isUnifiedIdValid","stateMutability":"view","inputs":[{"name":"unifiedId","type":"string"}],"outputs":[{"name":"","type":"bool"}]}
]`

// MotherRegistry binds the chain-agnostic registry holding master addresses
// and per-identifier nonces.
type MotherRegistry struct {
	contract *bind.BoundContract
}

// NewMotherRegistry binds the mother registry at address against any
// read-capable backend.
func NewMotherRegistry(address common.Address, backend bind.ContractCaller) (*MotherRegistry, error) {
	parsed, err := abi.JSON(strings.NewReader(motherRegistryABI))
	if err != nil {
		return nil, err
	}
	return &MotherRegistry{contract: bind.NewBoundContract(address, parsed, backend, nil, nil)}, nil
}

func (m *MotherRegistry) GetMasterAddress(opts *bind.CallOpts, unifiedID string) (common.Address, error) {
	var out []interface{}
	if err := m.contract.Call(opts, &out, "getMasterAddress", unifiedID); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (m *MotherRegistry) Nonces(opts *bind.CallOpts, unifiedID string) (*big.Int, error) {
	var out []interface{}
	if err := m.contract.Call(opts, &out, "nonces", unifiedID); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (m *MotherRegistry) GetNonce(opts *bind.CallOpts, unifiedID string) (*big.Int, error) {
	var out []interface{}
	if err := m.contract.Call(opts, &out, "getNonce", unifiedID); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (m *MotherRegistry) GetChainData(opts *bind.CallOpts, unifiedID string, chainID *big.Int) (common.Address, []common.Address, error) {
	var out []interface{}
	if err := m.contract.Call(opts, &out, "getChainData", unifiedID, chainID); err != nil {
		return common.Address{}, nil, err
	}
	primary := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	secondaries := *abi.ConvertType(out[1], new([]common.Address)).(*[]common.Address)
	return primary, secondaries, nil
}

func (m *MotherRegistry) ResolveAddressToUnifiedID(opts *bind.CallOpts, addr common.Address, chainID *big.Int) (string, error) {
	var out []interface{}
	if err := m.contract.Call(opts, &out, "resolveAddressToUnifiedId", addr, chainID); err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// ChildRegistry binds the per-chain registry holding primary/secondary
// address bindings.
type ChildRegistry struct {
	contract *bind.BoundContract
}

// NewChildRegistry binds the child registry at address against any
// read-capable backend.
func NewChildRegistry(address common.Address, backend bind.ContractCaller) (*ChildRegistry, error) {
	parsed, err := abi.JSON(strings.NewReader(childRegistryABI))
	if err != nil {
		return nil, err
	}
	return &ChildRegistry{contract: bind.NewBoundContract(address, parsed, backend, nil, nil)}, nil
}

func (c *ChildRegistry) GetPrimaryAddress(opts *bind.CallOpts, unifiedID string) (common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "getPrimaryAddress", unifiedID); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *ChildRegistry) GetSecondaryAddresses(opts *bind.CallOpts, unifiedID string) ([]common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "getSecondaryAddresses", unifiedID); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

func (c *ChildRegistry) ResolveAddressToUnifiedID(opts *bind.CallOpts, addr common.Address) (string, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "resolveAddressToUnifiedId", addr); err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (c *ChildRegistry) ResolveAllAddresses(opts *bind.CallOpts, unifiedID string) (common.Address, []common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "resolveAllAddresses", unifiedID); err != nil {
		return common.Address{}, nil, err
	}
	primary := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	secondaries := *abi.ConvertType(out[1], new([]common.Address)).(*[]common.Address)
	return primary, secondaries, nil
}

func (c *ChildRegistry) ResolveAnyAddressToUnifiedID(opts *bind.CallOpts, addr common.Address) (string, bool, bool, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "resolveAnyAddressToUnifiedId", addr); err != nil {
		return "", false, false, err
	}
	unifiedID := *abi.ConvertType(out[0], new(string)).(*string)
	isPrimary := *abi.ConvertType(out[1], new(bool)).(*bool)
	isSecondary := *abi.ConvertType(out[2], new(bool)).(*bool)
	return unifiedID, isPrimary, isSecondary, nil
}

// StorageUtil binds the helper contract for fee computation and authoritative
// signature verification.
type StorageUtil struct {
	contract *bind.BoundContract
}

// NewStorageUtil binds the storage-util contract at address against any
// read-capable backend.
func NewStorageUtil(address common.Address, backend bind.ContractCaller) (*StorageUtil, error) {
	parsed, err := abi.JSON(strings.NewReader(storageUtilABI))
	if err != nil {
		return nil, err
	}
	return &StorageUtil{contract: bind.NewBoundContract(address, parsed, backend, nil, nil)}, nil
}

func (s *StorageUtil) GetRequiredTokenAmount(opts *bind.CallOpts, token common.Address, baseFee *big.Int) (*big.Int, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "getRequiredTokenAmount", token, baseFee); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (s *StorageUtil) VerifySignature(opts *bind.CallOpts, data [32]byte, expectedSigner common.Address, signature []byte) (bool, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "verifySignature", data, expectedSigner, signature); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (s *StorageUtil) IsUnifiedIDValid(opts *bind.CallOpts, unifiedID string) (bool, error) {
	var out []interface{}
	if err := s.contract.Call(opts, &out, "isUnifiedIdValid", unifiedID); err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}
