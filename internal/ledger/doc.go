// Package ledger normalizes the per-order tracking ledger served by the
// order backend.
//
// The ledger is an append/update sequence of stage rows linking order items
// to fabrication stages. The backend's payload is not trusted: Normalize
// degrades malformed or absent input to an empty ledger so downstream
// derivation falls back to defaults instead of surfacing errors.
package ledger
