// Package pipeline derives per-item fabrication stages from an order's
// tracking ledger.
//
// The pipeline is a fixed five-point sequence (pending, smithing, puttying,
// final assembly, finished). Derivation is a pure read-only computation over
// a normalized ledger snapshot; fetch failures upstream degrade to the
// default stage rather than propagating.
package pipeline
