// Package reconcile propagates local employee-record edits to the system of
// record until acknowledged.
//
// A detector reduces two snapshots to at most one field-level change record
// per call. The queue attempts immediate synchronization, keeps failures
// pending, and retries on a fixed interval while anything is outstanding.
// Retries are best-effort in-memory state: a process restart drops the
// pending collection by design.
package reconcile
