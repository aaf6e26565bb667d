package orders

import "encoding/json"

// ItemStatusDone is the terminal order-item status assigned by the backend.
const ItemStatusDone = "done"

// Item is one fabricated piece within an order. Items are owned by the
// backend and treated as read-only here.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
	Status string `json:"status"`
}

// Terminal reports whether the backend already closed this item out.
func (i Item) Terminal() bool {
	return i.Status == ItemStatusDone
}

// Order is the backend's order shape including the raw tracking ledger.
// The ledger is kept raw here; internal/ledger normalizes it on demand.
type Order struct {
	ID     string          `json:"id"`
	Number string          `json:"number"`
	Client string          `json:"client"`
	Status string          `json:"status"`
	Items  []Item          `json:"items"`
	Ledger json.RawMessage `json:"ledger"`
}

// ItemIDs returns the order's item identifiers in item order.
func (o *Order) ItemIDs() []string {
	if o == nil {
		return nil
	}
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
