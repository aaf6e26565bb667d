// Package orders models the backend of record's order shape and fetches
// orders over its HTTP API.
//
// The backend owns orders, items, and the tracking ledger; this package only
// reads them. Missing or malformed responses are mapped to "no data" so the
// derivation path falls back to defaults instead of raising.
package orders
