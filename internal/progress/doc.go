// Package progress aggregates per-item pipeline stages into an order-level
// completion percentage.
package progress
