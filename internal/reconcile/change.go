package reconcile

import (
	"sync/atomic"
	"time"
)

// Field identifies a watched employee attribute.
type Field string

const (
	FieldName Field = "name"
	FieldRole Field = "role"
)

// watchedFields is the fixed comparison order for detection.
var watchedFields = []Field{FieldName, FieldRole}

// Employee is the snapshot shape the detector compares.
type Employee struct {
	ID   string
	Name string
	Role string
}

// ChangeRecord captures one field-level edit awaiting synchronization with
// the system of record. Seq is the record's identity: a process-wide
// monotonic counter, immune to the timestamp collisions that a
// (subject, field, createdAt) tuple risks under rapid successive edits.
type ChangeRecord struct {
	Seq       uint64
	SubjectID string
	Field     Field
	Previous  string
	New       string
	CreatedAt time.Time
}

var changeSeq atomic.Uint64

// Detect compares two snapshots of an employee over the watched field set
// and returns at most one change record per call: the first differing field
// in {name, role} order wins even when both changed. Returns false when the
// snapshots agree on every watched field.
func Detect(before, after Employee) (ChangeRecord, bool) {
	for _, field := range watchedFields {
		prev, next := fieldValue(before, field), fieldValue(after, field)
		if prev == next {
			continue
		}
		return ChangeRecord{
			Seq:       changeSeq.Add(1),
			SubjectID: after.ID,
			Field:     field,
			Previous:  prev,
			New:       next,
			CreatedAt: time.Now().UTC(),
		}, true
	}
	return ChangeRecord{}, false
}

func fieldValue(emp Employee, field Field) string {
	switch field {
	case FieldName:
		return emp.Name
	case FieldRole:
		return emp.Role
	default:
		return ""
	}
}
