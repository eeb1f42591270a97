package encoding

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	addrOne = common.HexToAddress("0x0000000000000000000000000000000000000001")
	addrTwo = common.HexToAddress("0x0000000000000000000000000000000000000002")
)

// TestRegisterHash_Golden pins the packed register digest for a fixed input
// against a reference value, so any drift in the tuple encoding or nonce
// packing is caught immediately.
func TestRegisterHash_Golden(t *testing.T) {
	hash, err := RegisterHash("alice_01", addrOne, big.NewInt(0))
	if err != nil {
		t.Fatalf("RegisterHash: %v", err)
	}
	want := "0x203f8726ddc1b93c6b27f249154b191661f93e889d09c79d2d74184f83ebddb6"
	if hash.Hex() != want {
		t.Fatalf("unexpected digest: got %s want %s", hash.Hex(), want)
	}

	personal := PersonalDigest(hash)
	wantPersonal := "0x9c18d222f1aa087802584e663d0561fd6106ab8ab02094709661f3da2b94f908"
	if personal.Hex() != wantPersonal {
		t.Fatalf("unexpected personal digest: got %s want %s", personal.Hex(), wantPersonal)
	}
}

// TestUpdateIdentifierHash_Golden pins the two-string tuple encoding.
func TestUpdateIdentifierHash_Golden(t *testing.T) {
	hash, err := UpdateIdentifierHash("alice_01", "alice_02", big.NewInt(7))
	if err != nil {
		t.Fatalf("UpdateIdentifierHash: %v", err)
	}
	want := "0x063ab4664710f702968283da9b73a51e145e63d673778f80e88694b2d104c1e2"
	if hash.Hex() != want {
		t.Fatalf("unexpected digest: got %s want %s", hash.Hex(), want)
	}
}

func TestPackedHashes_Deterministic(t *testing.T) {
	a, err := ChangePrimaryHash("alice_01", addrTwo, big.NewInt(3))
	if err != nil {
		t.Fatalf("ChangePrimaryHash: %v", err)
	}
	b, err := ChangePrimaryHash("alice_01", addrTwo, big.NewInt(3))
	if err != nil {
		t.Fatalf("ChangePrimaryHash: %v", err)
	}
	if a != b {
		t.Fatalf("same inputs produced different digests: %s vs %s", a.Hex(), b.Hex())
	}
}

// TestPackedHashes_NonceChangesDigest verifies that a nonce bump between two
// reads changes the digest, which is what invalidates previously signed but
// unsubmitted payloads.
func TestPackedHashes_NonceChangesDigest(t *testing.T) {
	a, err := AddSecondaryHash("alice_01", addrTwo, big.NewInt(0))
	if err != nil {
		t.Fatalf("AddSecondaryHash: %v", err)
	}
	b, err := AddSecondaryHash("alice_01", addrTwo, big.NewInt(1))
	if err != nil {
		t.Fatalf("AddSecondaryHash: %v", err)
	}
	if a == b {
		t.Fatal("digest did not change with the nonce")
	}
}

// Register and changePrimary encode the same (string, address) tuple shape,
// so identical inputs must produce identical digests across the two
// operations. The relayer action keeps them apart, not the hash.
func TestPackedHashes_SharedTupleShape(t *testing.T) {
	a, err := RegisterHash("alice_01", addrOne, big.NewInt(0))
	if err != nil {
		t.Fatalf("RegisterHash: %v", err)
	}
	b, err := ChangePrimaryHash("alice_01", addrOne, big.NewInt(0))
	if err != nil {
		t.Fatalf("ChangePrimaryHash: %v", err)
	}
	if a != b {
		t.Fatalf("tuple encodings diverged: %s vs %s", a.Hex(), b.Hex())
	}
}

func TestPackedHashes_Validation(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"empty identifier", func() error {
			_, err := RegisterHash("", addrOne, big.NewInt(0))
			return err
		}},
		{"identifier too short", func() error {
			_, err := RegisterHash("ab", addrOne, big.NewInt(0))
			return err
		}},
		{"identifier bad charset", func() error {
			_, err := RegisterHash("alice!01", addrOne, big.NewInt(0))
			return err
		}},
		{"nil nonce", func() error {
			_, err := RegisterHash("alice_01", addrOne, nil)
			return err
		}},
		{"negative nonce", func() error {
			_, err := RegisterHash("alice_01", addrOne, big.NewInt(-1))
			return err
		}},
		{"same old and new identifier", func() error {
			_, err := UpdateIdentifierHash("alice_01", "alice_01", big.NewInt(0))
			return err
		}},
	}

	for _, tc := range tests {
		if err := tc.run(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestOptionsBlob(t *testing.T) {
	blob, err := OptionsBlob(big.NewInt(1), big.NewInt(1700000000))
	if err != nil {
		t.Fatalf("OptionsBlob: %v", err)
	}
	// Two positional uint256 words behind the 0x prefix.
	want := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000001" +
		"000000000000000000000000000000000000000000000000000000006553f100"
	if blob != want {
		t.Fatalf("unexpected blob: got %s want %s", blob, want)
	}

	if _, err := OptionsBlob(nil, big.NewInt(1)); err == nil {
		t.Fatal("expected error for nil nonce")
	}
	if _, err := OptionsBlob(big.NewInt(1), big.NewInt(0)); err == nil {
		t.Fatal("expected error for zero deadline")
	}
}
