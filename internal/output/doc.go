// Package output provides the wire types and deterministic encoding for
// lint results.
//
// Identical runs over identical sources must produce byte-identical JSON.
// That keeps content-keyed caching honest, lets tests snapshot results
// without false positives, and makes diffs between runs meaningful.
//
// # Ordering Contract
//
// All arrays are deterministically ordered:
//
//   - files: path ASC
//   - diagnostics: path ASC → line ASC → column ASC → component ASC
//   - warnings: path ASC → code ASC
//   - components within a file: source order, as produced by analysis
//
// # JSON Encoding Rules
//
// The DeterministicEncode function produces byte-identical outputs by:
//
//  1. Stable key ordering: object keys are sorted alphabetically
//  2. Float formatting: rounded to max 6 decimal places
//  3. Null handling: nil/empty fields are omitted entirely
//
// # Snapshot Testing
//
// CompareSnapshots compares two encoded results while excluding the
// time-varying fields:
//
//   - runId
//   - startedAt
//   - durationMs
//
// Everything else, including every diagnostic and verdict, must match
// byte for byte.
package output
