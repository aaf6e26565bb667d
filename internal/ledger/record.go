package ledger

import "strings"

// Status represents the reported state of a single ledger row.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Record is one normalized row of an order's tracking ledger.
type Record struct {
	StageIndex int
	StageName  string
	Status     Status
	Items      []string
}

// ParseStatus converts a raw status string into a known Status. Unknown
// values degrade to pending rather than failing the row.
func ParseStatus(value string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusDone:
		return StatusDone
	case StatusInProgress:
		return StatusInProgress
	default:
		return StatusPending
	}
}

// HasItem reports whether the row is assigned to the given order item.
func (r Record) HasItem(itemID string) bool {
	for _, id := range r.Items {
		if id == itemID {
			return true
		}
	}
	return false
}
