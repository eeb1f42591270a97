// Package blockchain provides read-only access to the three unified-ID
// registries on EVM chains. It initializes an Ethereum client, wires typed
// bindings for the mother registry, child registry and storage-util helper,
// and exposes the resolution, nonce and fee lookups the SDK is built on. All
// state-changing transactions are executed by the off-chain relayer; this
// package never signs or submits anything.
package blockchain

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// EVMClient holds a connected ethclient.Client and typed bindings for the
// three registries.
type EVMClient struct {
	Client      *ethclient.Client
	Mother      *MotherRegistry
	Child       *ChildRegistry
	StorageUtil *StorageUtil

	// readTimeout bounds each contract read on top of the caller's context.
	// Zero means no extra bound.
	readTimeout time.Duration
}

// InitEvm dials an Ethereum endpoint and binds the three registries at the
// given addresses. dialTimeout bounds the connection attempt and readTimeout
// every subsequent contract read; zero disables the respective bound. Returns
// a ready-to-use EVMClient or an error.
func InitEvm(endpoint string, mother, child, storageUtil common.Address, dialTimeout, readTimeout time.Duration) (*EVMClient, error) {
	ctx := context.Background()
	if dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dialTimeout)
		defer cancel()
	}
	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		zap.L().Error("Failed to dial Ethereum endpoint", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}

	evm, err := NewEVMClientWithBackend(client, mother, child, storageUtil)
	if err != nil {
		client.Close()
		return nil, err
	}
	evm.Client = client
	evm.readTimeout = readTimeout
	return evm, nil
}

// NewEVMClientWithBackend binds the registries against an arbitrary
// read-capable backend. The resulting client has no Close-able RPC
// connection of its own; tests use this with fake backends.
func NewEVMClientWithBackend(backend bind.ContractCaller, mother, child, storageUtil common.Address) (*EVMClient, error) {
	var evm EVMClient
	var err error

	evm.Mother, err = NewMotherRegistry(mother, backend)
	if err != nil {
		return nil, err
	}
	evm.Child, err = NewChildRegistry(child, backend)
	if err != nil {
		return nil, err
	}
	evm.StorageUtil, err = NewStorageUtil(storageUtil, backend)
	if err != nil {
		return nil, err
	}
	return &evm, nil
}

// Close shuts down the underlying RPC connection, if any.
func (evm *EVMClient) Close() {
	if evm.Client != nil {
		evm.Client.Close()
	}
}

// callOpts builds bind.CallOpts carrying the given context.
func callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

// readContext applies the configured read timeout on top of the caller's
// context. The caller must invoke the returned cancel func.
func (evm *EVMClient) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if evm.readTimeout > 0 {
		return context.WithTimeout(ctx, evm.readTimeout)
	}
	return context.WithCancel(ctx)
}
