// Package stock derives per-item availability from the catalog and the
// checkout ledger. It is a pure read-side projection: nothing here writes
// to either store, and the result is recomputed from scratch on every call.
package stock

import (
	"fmt"

	"Gin_postgres_redis_equipment_tracker/models"
)

// ItemStock is a catalog item with its derived quantities.
//
// Remaining may be negative when the ledger claims more units out than the
// catalog owns (corrupted data); Available clamps that at zero so the
// allocation path never hands out negative headroom, while Remaining keeps
// the true number visible for diagnostics.
type ItemStock struct {
	models.Item
	CheckedOut int `json:"checkedOut"`
	Remaining  int `json:"remaining"`
	Available  int `json:"available"`
}

// Snapshot is the result of one stock computation over the full catalog.
type Snapshot struct {
	Items    []ItemStock `json:"items"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Compute aggregates open checkout quantities per item. Entries whose
// item id is missing from the catalog are excluded from the sums and
// reported as warnings; they never fail the computation. The result is
// independent of entry order.
func Compute(items []models.Item, entries []models.CheckoutEntry) *Snapshot {
	known := make(map[string]struct{}, len(items))
	for _, it := range items {
		known[it.ItemID] = struct{}{}
	}

	out := make(map[string]int, len(items))
	snap := &Snapshot{Items: make([]ItemStock, 0, len(items))}
	for _, e := range entries {
		if e.Returned {
			continue
		}
		if _, ok := known[e.ItemID]; !ok {
			snap.Warnings = append(snap.Warnings,
				fmt.Sprintf("checkout entry %d references unknown item %q", e.LogID, e.ItemID))
			continue
		}
		qty := e.Quantity
		if qty < 0 {
			qty = 0
		}
		out[e.ItemID] += qty
	}

	for _, it := range items {
		checked := out[it.ItemID]
		remaining := it.OriginalStock - checked
		available := remaining
		if available < 0 {
			available = 0
		}
		snap.Items = append(snap.Items, ItemStock{
			Item:       it,
			CheckedOut: checked,
			Remaining:  remaining,
			Available:  available,
		})
	}
	return snap
}

// Lookup returns the derived stock for one item id.
func (s *Snapshot) Lookup(itemID string) (ItemStock, bool) {
	for _, it := range s.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return ItemStock{}, false
}

// Remaining returns the allocatable quantity for an item, zero-clamped.
// Unknown ids report zero so nothing can be staged against them.
func (s *Snapshot) Remaining(itemID string) int {
	it, ok := s.Lookup(itemID)
	if !ok {
		return 0
	}
	return it.Available
}
