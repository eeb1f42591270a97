package encoding

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/unifiedid/unifiedid-sdk-go/pkg/errs"
)

var mother = common.HexToAddress("0x8C7b9D2F0E31a46c5D8f14E14aB2E9E3cC14d4B1")

func legacyParams() TypedParams {
	return TypedParams{
		Variant:           VariantTypedLegacy,
		ChainID:           11155111,
		VerifyingContract: mother,
		Nonce:             big.NewInt(4),
		Deadline:          big.NewInt(1700003600),
	}
}

func TestRegisterTypedData_Legacy(t *testing.T) {
	td, err := RegisterTypedData(legacyParams(), "alice_01", addrOne)
	if err != nil {
		t.Fatalf("RegisterTypedData: %v", err)
	}

	if td.PrimaryType != "Register" {
		t.Fatalf("unexpected primary type: %s", td.PrimaryType)
	}
	if td.Domain.Name != DomainName || td.Domain.Version != DomainVersion {
		t.Fatalf("unexpected domain: %s/%s", td.Domain.Name, td.Domain.Version)
	}
	if td.Domain.VerifyingContract != mother.Hex() {
		t.Fatalf("unexpected verifying contract: %s", td.Domain.VerifyingContract)
	}

	fields := td.Types["Register"]
	for _, f := range fields {
		if f.Name == "targetChainId" {
			t.Fatal("legacy variant must not carry targetChainId")
		}
	}
	if _, ok := td.Message["nonce"]; !ok {
		t.Fatal("message missing nonce")
	}
	if _, ok := td.Message["deadline"]; !ok {
		t.Fatal("message missing deadline")
	}

	// The structure must hash cleanly through the EIP-712 encoder.
	hash, err := TypedDataHash(td)
	if err != nil {
		t.Fatalf("TypedDataHash: %v", err)
	}
	again, err := TypedDataHash(td)
	if err != nil {
		t.Fatalf("TypedDataHash: %v", err)
	}
	if hash != again {
		t.Fatal("typed data hash not deterministic")
	}
}

func TestTypedData_EnhancedCarriesTargetChain(t *testing.T) {
	p := legacyParams()
	p.Variant = VariantTypedEnhanced
	p.TargetChainID = p.ChainID

	td, err := ChangePrimaryTypedData(p, "alice_01", addrTwo)
	if err != nil {
		t.Fatalf("ChangePrimaryTypedData: %v", err)
	}
	found := false
	for _, f := range td.Types["ChangePrimary"] {
		if f.Name == "targetChainId" && f.Type == "uint256" {
			found = true
		}
	}
	if !found {
		t.Fatal("enhanced variant must carry targetChainId")
	}
	if _, err := TypedDataHash(td); err != nil {
		t.Fatalf("TypedDataHash: %v", err)
	}
}

// TestTypedData_EnhancedChainMismatch verifies the strict precondition:
// targetChainId must equal the domain chain ID, otherwise construction fails
// before anything can be signed.
func TestTypedData_EnhancedChainMismatch(t *testing.T) {
	p := legacyParams()
	p.Variant = VariantTypedEnhanced
	p.TargetChainID = 1

	_, err := RegisterTypedData(p, "alice_01", addrOne)
	if err == nil {
		t.Fatal("expected error for chain ID mismatch")
	}
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Field != "targetChainId" {
		t.Fatalf("unexpected field: %s", vErr.Field)
	}
}

func TestTypedData_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TypedParams)
	}{
		{"packed variant rejected", func(p *TypedParams) { p.Variant = VariantPacked }},
		{"zero chain id", func(p *TypedParams) { p.ChainID = 0 }},
		{"zero verifying contract", func(p *TypedParams) { p.VerifyingContract = common.Address{} }},
		{"nil nonce", func(p *TypedParams) { p.Nonce = nil }},
		{"nil deadline", func(p *TypedParams) { p.Deadline = nil }},
	}

	for _, tc := range tests {
		p := legacyParams()
		tc.mutate(&p)
		if _, err := AddSecondaryTypedData(p, "alice_01", addrTwo); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestUpdateIdentifierTypedData_RejectsSameNames(t *testing.T) {
	if _, err := UpdateIdentifierTypedData(legacyParams(), "alice_01", "alice_01"); err == nil {
		t.Fatal("expected error for identical identifiers")
	}
}
