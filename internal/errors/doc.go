// Package errors provides the coded error type shared by every layer of encounter-forge.
//
// Errors carry a Code, a user facing Message, an optional Cause and free form
// metadata. The metadata is how generation failures report their diagnostics
// (active filters, pool sizes, strategies tried) to the caller.
//
// # Basic Usage
//
//	err := errors.NotFound("no creatures found matching criteria").
//	    WithMeta("environment", "Forest").
//	    WithMeta("pool_size", 42)
//
//	if err := repo.ListCreatures(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load creature catalog")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidatePositive("xp_threshold", input.XPThreshold, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repositories return NotFound/Internal and wrap driver errors. Orchestrators
// validate input (InvalidArgument) and surface generation failures as NotFound
// (no candidates after relaxation) or FailedPrecondition (no viable selection).
// Handlers convert with ToGRPCError.
package errors
