// Package directory maintains a local SQLite snapshot of employee records.
//
// The snapshot is supporting state for change reconciliation: an incoming
// edit is diffed against the stored snapshot to produce at most one change
// record, and the snapshot is updated in the same call. Employee data is
// owned by the external order backend; losing this database only resets
// change detection.
package directory
