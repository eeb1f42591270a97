package builder

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/blockchain"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/encoding"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/model"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/relayer"
	"github.com/unifiedid/unifiedid-sdk-go/pkg/signer"
)

const (
	testChainID = uint64(11155111)

	primaryKeyHex   = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	secondaryKeyHex = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

// nonceBackend answers only the mother registry's nonces(string) accessor and
// counts every contract call it sees.
type nonceBackend struct {
	nonce *big.Int
	calls int
}

var noncesSelector = crypto.Keccak256([]byte("nonces(string)"))[:4]

func (f *nonceBackend) CodeAt(_ context.Context, _ common.Address, _ *big.Int) ([]byte, error) {
	return []byte{0x01}, nil
}

func (f *nonceBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls++
	if bytes.Equal(call.Data[:4], noncesSelector) {
		return common.BigToHash(f.nonce).Bytes(), nil
	}
	return nil, errors.New("execution reverted")
}

func newTestBuilder(t *testing.T, backend *nonceBackend) *Builder {
	t.Helper()
	evm, err := blockchain.NewEVMClientWithBackend(backend,
		common.HexToAddress("0x0000000000000000000000000000000000000A01"),
		common.HexToAddress("0x0000000000000000000000000000000000000A02"),
		common.HexToAddress("0x0000000000000000000000000000000000000A03"))
	if err != nil {
		t.Fatalf("NewEVMClientWithBackend: %v", err)
	}
	b := New(evm, relayer.New("http://relayer.invalid", "", time.Second), testChainID, time.Hour)
	b.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return b
}

func newSigner(t *testing.T, keyHex string) *signer.KeyMaterialSigner {
	t.Helper()
	s, err := signer.NewKeyMaterialSigner(keyHex)
	if err != nil {
		t.Fatalf("NewKeyMaterialSigner: %v", err)
	}
	return s
}

func validSig() []byte {
	sig := make([]byte, signer.SignatureLength)
	sig[0] = 0x01
	sig[64] = 27
	return sig
}

// TestBuild_ValidationBeforeNetwork: malformed parameters fail with a
// ValidationError naming the field, before any chain read or signing.
func TestBuild_ValidationBeforeNetwork(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(1)}
	b := newTestBuilder(t, backend)
	ctx := context.Background()
	addr := "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

	tests := []struct {
		name  string
		field string
		build func() error
	}{
		{"register bad identifier", "unifiedId", func() error {
			_, err := b.BuildRegister(ctx, RegisterParams{UnifiedID: "a!", UserAddress: addr, PrimarySignature: validSig()})
			return err
		}},
		{"register bad address", "userAddress", func() error {
			_, err := b.BuildRegister(ctx, RegisterParams{UnifiedID: "alice_01", UserAddress: "0x123", PrimarySignature: validSig()})
			return err
		}},
		{"register missing primary signature", "primarySignature", func() error {
			_, err := b.BuildRegister(ctx, RegisterParams{UnifiedID: "alice_01", UserAddress: addr})
			return err
		}},
		{"register short master signature", "masterSignature", func() error {
			_, err := b.BuildRegister(ctx, RegisterParams{
				UnifiedID: "alice_01", UserAddress: addr,
				PrimarySignature: validSig(), MasterSignature: []byte{0x01},
			})
			return err
		}},
		{"add secondary missing secondary signature", "secondarySignature", func() error {
			_, err := b.BuildAddSecondary(ctx, AddSecondaryParams{
				UnifiedID: "alice_01", SecondaryAddress: addr, PrimarySignature: validSig(),
			})
			return err
		}},
		{"add secondary all-zero signature", "primarySignature", func() error {
			_, err := b.BuildAddSecondary(ctx, AddSecondaryParams{
				UnifiedID: "alice_01", SecondaryAddress: addr,
				PrimarySignature: make([]byte, signer.SignatureLength), SecondarySignature: validSig(),
			})
			return err
		}},
		{"remove secondary missing signature", "signature", func() error {
			_, err := b.BuildRemoveSecondary(ctx, RemoveSecondaryParams{UnifiedID: "alice_01", SecondaryAddress: addr})
			return err
		}},
		{"change primary same addresses", "newAddress", func() error {
			_, err := b.BuildChangePrimary(ctx, ChangePrimaryParams{
				UnifiedID: "alice_01", CurrentAddress: addr, NewAddress: addr,
				CurrentPrimarySignature: validSig(), NewPrimarySignature: validSig(),
			})
			return err
		}},
		{"update same identifier", "newUnifiedId", func() error {
			_, err := b.BuildUpdateIdentifier(ctx, UpdateIdentifierParams{
				OldUnifiedID: "alice_01", NewUnifiedID: "alice_01", Signature: validSig(),
			})
			return err
		}},
		{"register signed missing signer", "primarySigner", func() error {
			_, err := b.BuildRegisterSigned(ctx, RegisterSignParams{UnifiedID: "alice_01"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			var vErr *errs.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
	if backend.calls != 0 {
		t.Fatalf("validation must run before any chain read, saw %d calls", backend.calls)
	}
}

func TestBuildRegister_PinnedNonce(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(99)}
	b := newTestBuilder(t, backend)
	addr := "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"

	req, err := b.BuildRegister(context.Background(), RegisterParams{
		UnifiedID:        "alice_01",
		UserAddress:      addr,
		PrimarySignature: validSig(),
		Nonce:            big.NewInt(7),
	})
	if err != nil {
		t.Fatalf("BuildRegister: %v", err)
	}
	if backend.calls != 0 {
		t.Fatalf("pinned nonce must skip the chain read, saw %d calls", backend.calls)
	}
	if req.Action != relayer.ActionRegister {
		t.Fatalf("unexpected action %q", req.Action)
	}
	if req.Nonce != "7" {
		t.Fatalf("unexpected nonce %q", req.Nonce)
	}
	if req.ChainID != testChainID {
		t.Fatalf("unexpected chainId %d", req.ChainID)
	}
	if req.UserAddress != common.HexToAddress(addr).Hex() {
		t.Fatalf("address not checksummed: %q", req.UserAddress)
	}
	if req.MasterSignature != "" {
		t.Fatalf("master signature should be omitted, got %q", req.MasterSignature)
	}

	// Deadline is now + offset; with now fixed the blob is deterministic.
	wantBlob, err := encoding.OptionsBlob(big.NewInt(7), big.NewInt(1_700_000_000+3600))
	if err != nil {
		t.Fatalf("OptionsBlob: %v", err)
	}
	if req.Options != wantBlob {
		t.Fatalf("options blob mismatch:\n got %s\nwant %s", req.Options, wantBlob)
	}
}

func TestBuildRegisterSigned(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(3)}
	b := newTestBuilder(t, backend)
	primary := newSigner(t, primaryKeyHex)

	req, err := b.BuildRegisterSigned(context.Background(), RegisterSignParams{
		UnifiedID: "alice_01",
		Primary:   primary,
	})
	if err != nil {
		t.Fatalf("BuildRegisterSigned: %v", err)
	}
	if backend.calls == 0 {
		t.Fatal("expected a fresh nonce read")
	}
	if req.UserAddress != primary.Address().Hex() {
		t.Fatalf("user address should default to the primary signer, got %q", req.UserAddress)
	}
	if req.Nonce != "3" {
		t.Fatalf("payload nonce must match the signed nonce, got %q", req.Nonce)
	}

	hash, err := encoding.RegisterHash("alice_01", primary.Address(), big.NewInt(3))
	if err != nil {
		t.Fatalf("RegisterHash: %v", err)
	}
	if !signer.VerifyLocally(hash, common.FromHex(req.PrimarySignature), primary.Address()) {
		t.Fatal("primary signature does not verify")
	}
}

func TestBuildAddSecondarySigned(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(4)}
	b := newTestBuilder(t, backend)
	primary := newSigner(t, primaryKeyHex)
	secondary := newSigner(t, secondaryKeyHex)

	req, err := b.BuildAddSecondarySigned(context.Background(), AddSecondarySignParams{
		UnifiedID: "alice_01",
		Primary:   primary,
		Secondary: secondary,
	})
	if err != nil {
		t.Fatalf("BuildAddSecondarySigned: %v", err)
	}
	if req.SecondaryAddress != secondary.Address().Hex() {
		t.Fatalf("secondary address should default to the secondary signer, got %q", req.SecondaryAddress)
	}

	// Both wallets sign the same digest.
	hash, err := encoding.AddSecondaryHash("alice_01", secondary.Address(), big.NewInt(4))
	if err != nil {
		t.Fatalf("AddSecondaryHash: %v", err)
	}
	if !signer.VerifyLocally(hash, common.FromHex(req.PrimarySignature), primary.Address()) {
		t.Fatal("primary signature does not verify against the shared digest")
	}
	if !signer.VerifyLocally(hash, common.FromHex(req.SecondarySignature), secondary.Address()) {
		t.Fatal("secondary signature does not verify against the shared digest")
	}
}

func TestBuildChangePrimarySigned(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(5)}
	b := newTestBuilder(t, backend)
	current := newSigner(t, primaryKeyHex)
	next := newSigner(t, secondaryKeyHex)

	req, err := b.BuildChangePrimarySigned(context.Background(), ChangePrimarySignParams{
		UnifiedID: "alice_01",
		Current:   current,
		New:       next,
	})
	if err != nil {
		t.Fatalf("BuildChangePrimarySigned: %v", err)
	}
	if req.NewAddress != next.Address().Hex() {
		t.Fatalf("unexpected new address %q", req.NewAddress)
	}

	hash, err := encoding.ChangePrimaryHash("alice_01", next.Address(), big.NewInt(5))
	if err != nil {
		t.Fatalf("ChangePrimaryHash: %v", err)
	}
	if !signer.VerifyLocally(hash, common.FromHex(req.CurrentPrimarySignature), current.Address()) {
		t.Fatal("current primary signature does not verify")
	}
	if !signer.VerifyLocally(hash, common.FromHex(req.NewPrimarySignature), next.Address()) {
		t.Fatal("new primary signature does not verify")
	}
}

func TestBuildChangePrimarySigned_SameSigner(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(5)}
	b := newTestBuilder(t, backend)
	s := newSigner(t, primaryKeyHex)

	_, err := b.BuildChangePrimarySigned(context.Background(), ChangePrimarySignParams{
		UnifiedID: "alice_01",
		Current:   s,
		New:       s,
	})
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "newSigner" {
		t.Fatalf("expected ValidationError on newSigner, got %v", err)
	}
	if backend.calls != 0 {
		t.Fatal("equality check must run before the nonce read")
	}
}

func TestBuildUpdateIdentifierSigned(t *testing.T) {
	backend := &nonceBackend{nonce: big.NewInt(6)}
	b := newTestBuilder(t, backend)
	s := newSigner(t, primaryKeyHex)

	req, err := b.BuildUpdateIdentifierSigned(context.Background(), UpdateIdentifierSignParams{
		OldUnifiedID: "alice_01",
		NewUnifiedID: "alice_02",
		Signer:       s,
	})
	if err != nil {
		t.Fatalf("BuildUpdateIdentifierSigned: %v", err)
	}
	if req.OldUnifiedID != "alice_01" || req.NewUnifiedID != "alice_02" {
		t.Fatalf("identifiers not carried: %+v", req)
	}

	hash, err := encoding.UpdateIdentifierHash("alice_01", "alice_02", big.NewInt(6))
	if err != nil {
		t.Fatalf("UpdateIdentifierHash: %v", err)
	}
	if !signer.VerifyLocally(hash, common.FromHex(req.Signature), s.Address()) {
		t.Fatal("signature does not verify")
	}
}

// recordingObserver captures lifecycle notifications.
type recordingObserver struct {
	started   []string
	completed []string
	failed    []string
}

func (o *recordingObserver) OperationStarted(action string) { o.started = append(o.started, action) }
func (o *recordingObserver) OperationCompleted(action string, _ model.Result) {
	o.completed = append(o.completed, action)
}
func (o *recordingObserver) OperationFailed(action string, _ error) {
	o.failed = append(o.failed, action)
}

func TestSubmit_ObserverLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	backend := &nonceBackend{nonce: big.NewInt(1)}
	evm, err := blockchain.NewEVMClientWithBackend(backend,
		common.HexToAddress("0x0000000000000000000000000000000000000A01"),
		common.HexToAddress("0x0000000000000000000000000000000000000A02"),
		common.HexToAddress("0x0000000000000000000000000000000000000A03"))
	if err != nil {
		t.Fatalf("NewEVMClientWithBackend: %v", err)
	}
	obs := &recordingObserver{}
	b := New(evm, relayer.New(srv.URL, "", time.Second), testChainID, 0).WithObserver(obs)

	result, err := b.Submit(context.Background(), relayer.ActionRegister, map[string]string{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.Success {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(obs.started) != 1 || len(obs.completed) != 1 || len(obs.failed) != 0 {
		t.Fatalf("unexpected lifecycle: %+v", obs)
	}

	srv.Close()
	if _, err := b.Submit(context.Background(), relayer.ActionRegister, map[string]string{}); err == nil {
		t.Fatal("expected transport error")
	}
	if len(obs.failed) != 1 {
		t.Fatalf("observer not notified of failure: %+v", obs)
	}
}
