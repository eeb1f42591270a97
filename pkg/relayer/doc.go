// Package relayer implements the HTTP client for the off-chain relayer that
// executes state-changing transactions.
//
// # Submitting Operations
//
// Submit posts a JSON payload under an action path with Bearer
// authentication:
//
//	c := relayer.New(baseURL, authToken, 30*time.Second)
//	result, err := c.Submit(ctx, relayer.ActionRegister, payload)
//
// The action constants double as the POST paths: register, addSecondary,
// removeSecondary, changePrimary, updateUnifiedId.
//
// # Error Model
//
// The client separates three outcomes:
//
//   - Transport failure (DNS, refused connection, timeout): returned as
//     errs.NetworkError. The operation may or may not have reached the
//     relayer.
//   - API rejection (non-2xx, or a 2xx body carrying "success": false):
//     normalized into model.Result with Success=false and the relayer's
//     error body preserved. This is NOT a Go error; rejections are expected
//     outcomes the caller inspects.
//   - Acceptance: model.Result with Success=true and the relayer's data.
//
// A 2xx body that is not an envelope (or not JSON at all) is kept verbatim
// in Result.Data so nothing the relayer said is lost; non-JSON bodies are
// quoted so the Result stays marshalable.
//
// # Liveness
//
// Health and Ping GET the relayer's health endpoints and return the decoded
// body; a non-200 status is an errs.APIError.
package relayer
