// Package model defines the data structures exchanged between the SDK, the
// on-chain registries and the off-chain relayer: resolution results, chain
// scoped bindings, and the JSON payloads posted per operation. These structs
// mirror the relayer wire contract field-for-field.
package model

import (
	"encoding/json"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// unifiedIDPattern bounds identifiers to 3-64 characters of letters, digits,
// underscore and hyphen.
var unifiedIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)

// IsValidUnifiedID reports whether id satisfies the identifier character set
// and length bounds.
func IsValidUnifiedID(id string) bool {
	return unifiedIDPattern.MatchString(id)
}

// IsValidAddress reports whether s is a syntactically valid 20-byte hex
// address (checksum-insensitive).
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// MotherRecord is the mother-registry view of an identifier. IsValid is true
// iff MasterAddress is not the zero address.
type MotherRecord struct {
	IsValid       bool           `json:"isValid"`
	MasterAddress common.Address `json:"masterAddress"`
}

// AddressRole is the authoritative role resolution of an address on the child
// registry. An unknown address resolves to the zero value rather than an
// error, so callers can use it as a non-throwing existence probe. The two
// flags are passed through from the registry verbatim and are not asserted to
// be mutually exclusive.
type AddressRole struct {
	UnifiedID   string `json:"unifiedId"`
	IsPrimary   bool   `json:"isPrimary"`
	IsSecondary bool   `json:"isSecondary"`
}

// ChainData is the (identifier, chainId) scoped binding held by the mother
// registry. IsValid is true iff Primary is not the zero address.
type ChainData struct {
	Primary     common.Address   `json:"primary"`
	Secondaries []common.Address `json:"secondaries"`
	IsValid     bool             `json:"isValid"`
}

// Result is the normalized outcome of a relayer-submitted operation. Expected
// failures (relayer rejection, stale nonce, expired deadline) land here with
// Success=false; they are never surfaced as Go errors by the high-level API.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details string          `json:"details,omitempty"`
}

// RegisterRequest is the relayer payload for registering a new identifier.
// MasterSignature may be empty when the master wallet and primary wallet are
// the same party and a single signature is accepted.
type RegisterRequest struct {
	Action           string `json:"action"`
	UnifiedID        string `json:"unifiedId"`
	UserAddress      string `json:"userAddress"`
	Nonce            string `json:"nonce"`
	ChainID          uint64 `json:"chainId"`
	MasterSignature  string `json:"masterSignature,omitempty"`
	PrimarySignature string `json:"primarySignature"`
	Options          string `json:"options"`
}

// AddSecondaryRequest is the relayer payload for binding a secondary address.
// Both parties sign the same digest.
type AddSecondaryRequest struct {
	Action             string `json:"action"`
	UnifiedID          string `json:"unifiedId"`
	SecondaryAddress   string `json:"secondaryAddress"`
	Nonce              string `json:"nonce"`
	ChainID            uint64 `json:"chainId"`
	PrimarySignature   string `json:"primarySignature"`
	SecondarySignature string `json:"secondarySignature"`
	Options            string `json:"options"`
}

// RemoveSecondaryRequest is the relayer payload for unbinding a secondary
// address.
type RemoveSecondaryRequest struct {
	Action           string `json:"action"`
	UnifiedID        string `json:"unifiedId"`
	SecondaryAddress string `json:"secondaryAddress"`
	Nonce            string `json:"nonce"`
	ChainID          uint64 `json:"chainId"`
	Signature        string `json:"signature"`
	Options          string `json:"options"`
}

// ChangePrimaryRequest is the relayer payload for switching the primary
// wallet. Both the outgoing and the incoming primary sign.
type ChangePrimaryRequest struct {
	Action                  string `json:"action"`
	UnifiedID               string `json:"unifiedId"`
	NewAddress              string `json:"newAddress"`
	Nonce                   string `json:"nonce"`
	ChainID                 uint64 `json:"chainId"`
	CurrentPrimarySignature string `json:"currentPrimarySignature"`
	NewPrimarySignature     string `json:"newPrimarySignature"`
	Options                 string `json:"options"`
}

// UpdateIdentifierRequest is the relayer payload for renaming an identifier.
type UpdateIdentifierRequest struct {
	Action       string `json:"action"`
	OldUnifiedID string `json:"oldUnifiedId"`
	NewUnifiedID string `json:"newUnifiedId"`
	Nonce        string `json:"nonce"`
	ChainID      uint64 `json:"chainId"`
	Signature    string `json:"signature"`
	Options      string `json:"options"`
}
