// Package model defines the data structures exchanged between the SDK, the
// on-chain registries and the off-chain relayer.
//
// # Wire Payloads
//
// RegisterRequest, AddSecondaryRequest, RemoveSecondaryRequest,
// ChangePrimaryRequest and UpdateIdentifierRequest mirror the relayer's JSON
// contract field-for-field; their json tags are wire format and must not be
// renamed. Result is the relayer's response envelope, with Success, Data,
// Error and Details.
//
// # Chain-State Views
//
// MotherRecord, AddressRole and ChainData carry the decoded answers of the
// registry read operations: the master record, the role an address plays
// (primary and/or secondary, and for which identifier), and the per-chain
// wallet set.
//
// # Validation
//
// IsValidUnifiedID and IsValidAddress hold the two format rules everything
// else builds on: identifiers are 3-64 characters of [A-Za-z0-9_-], and
// addresses are 0x-prefixed 20-byte hex.
package model
