// Package builder assembles signed, ready-to-submit relayer payloads for the
// five unified-ID operations.
//
// # Two Calling Conventions
//
// Every operation has a pre-signed and an auto-signed builder.
//
// Pre-signed: the caller supplies finished signatures (hex strings) and the
// builder validates shapes, fetches the nonce if one was not pinned, and
// serializes the wire payload:
//
//	payload, err := b.BuildRegister(ctx, builder.RegisterParams{
//		UnifiedID:     "alice_01",
//		UserAddress:   addr.Hex(),
//		UserSignature: sigHex,
//	})
//
// Auto-signed: the caller supplies signer.Signer implementations and the
// builder reads the fresh nonce, computes the canonical digest and drives
// each signer:
//
//	payload, err := b.BuildRegisterSigned(ctx, builder.RegisterSignParams{
//		UnifiedID: "alice_01",
//		Primary:   mySigner,
//	})
//
// Two-party operations (add-secondary, change-primary) take two signers and
// produce two signatures over the same digest.
//
// # Validation Order
//
// Builders validate all inputs before touching the network. A malformed
// identifier, address or signature comes back as errs.ValidationError with
// the offending field named, and no RPC call is made.
//
// # Nonce and Deadline
//
// Unless a params struct pins a nonce, the builder reads the current one
// from the mother registry. Each payload carries an options blob with the
// nonce and a deadline, the current time plus the configured offset. The
// relayer rejects payloads past their deadline.
//
// # Submission and Observers
//
// Submit posts a payload to the relayer under an action path and reports the
// lifecycle to an attached Observer:
//
//	b.WithObserver(obs)
//	result, err := b.Submit(ctx, relayer.ActionRegister, payload)
//
// Observers see the operation start, the outcome and the error, which is
// enough for metrics or audit logging without wrapping every call site.
//
// # See Also
//
//   - encoding package for the digests being signed
//   - signer package for Signer implementations
package builder
