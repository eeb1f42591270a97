// Package errs defines the error kinds surfaced by the SDK.
//
// Callers branch with errors.As:
//
//	var vErr *errs.ValidationError
//	if errors.As(err, &vErr) {
//		fmt.Println("bad input in field", vErr.Field)
//	}
//
// The kinds:
//
//   - ValidationError: a caller-supplied input failed a format rule; names
//     the offending field. The only error kind the SDK's write operations
//     return directly.
//   - NetworkError: transport failure reaching the RPC endpoint or relayer.
//   - ContractCallError: a contract read failed for a reason other than
//     "not found"; names the failing operation.
//   - APIError: the relayer answered with an unexpected HTTP status.
//   - SignatureError: signing or signature recovery failed.
//
// "Not found" is never an error: read helpers map it to sentinel values
// (zero address, empty string, false) instead.
package errs
