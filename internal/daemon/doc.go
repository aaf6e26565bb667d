// Package daemon wires the tracker, bus, reconciliation queue, and snapshot
// store into one lifecycle and enforces single-instance execution with a
// lock file.
package daemon
