// Package tracker polls tracked orders, re-derives per-item pipeline stages
// from their ledgers, and publishes stage-change events on the bus.
package tracker
