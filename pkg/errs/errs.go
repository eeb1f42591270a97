// Package errs defines the error kinds surfaced by the SDK. Read helpers map
// "not found" to sentinel values and never use these types for it; everything
// else is wrapped into one of the kinds below so callers can branch with
// errors.As.
package errs

import "fmt"

// ValidationError reports a missing or malformed input parameter. It is always
// returned before any network or signer call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NetworkError reports a transport-level failure: the RPC node or the relayer
// could not be reached, or no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ContractCallError reports that an RPC call reached the node but the contract
// reverted or returned malformed data. Op names the read that failed.
type ContractCallError struct {
	Op  string
	Err error
}

func (e *ContractCallError) Error() string {
	return fmt.Sprintf("contract call %s failed: %v", e.Op, e.Err)
}

func (e *ContractCallError) Unwrap() error { return e.Err }

// APIError reports a non-2xx relayer response. Body carries the relayer's
// structured error payload verbatim.
type APIError struct {
	Endpoint string
	Status   int
	Body     []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("relayer %s returned status %d: %s", e.Endpoint, e.Status, string(e.Body))
}

// SignatureError reports that the signer rejected the request, the key
// material was malformed, or typed-data construction was invalid.
type SignatureError struct {
	Reason string
	Err    error
}

func (e *SignatureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signature generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("signature generation failed: %s", e.Reason)
}

func (e *SignatureError) Unwrap() error { return e.Err }
