// Package schema declares form validation schemas and evaluates them.
//
// A schema is an ordered list of string fields, each with an ordered chain of
// checks, followed by an ordered list of cross-field refinements. Validate runs
// in three stages: shape (every declared path must hold a string, unknown keys
// are stripped), per-field checks (first failing check per path wins) and
// refinements (run only on a well-shaped object, last failure per target
// wins). Validation never returns a Go error; failures are reported in
// Result.Errors keyed by dotted field path.
package schema
