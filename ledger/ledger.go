// Package ledger is the checkout entry state machine: OPEN -> RETURNED,
// terminal, no cancellation. The transition functions are pure; the db
// layer runs them inside a transaction and persists the results.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"Gin_postgres_redis_equipment_tracker/models"
)

var ErrAlreadyReturned = errors.New("entry already returned")
var ErrInvalidQuantity = errors.New("invalid return quantity")

// ErrPartialReturn rejects returns that leave units unaccounted for.
// Returning fewer units than were checked out silently drops the remainder
// from the outstanding totals, so it must be requested explicitly.
var ErrPartialReturn = errors.New("partial return requires an explicit write-off")

// Return is one requested transition on an open entry.
type Return struct {
	ReturnQty  int  `json:"returnQty"`
	DamagedQty int  `json:"damagedQty"`
	WriteOff   bool `json:"writeOff"`
}

// WriteDown asks the catalog to permanently reduce an item's owned stock.
// Damage at return time is the only path that shrinks stock; there is no
// increasing path by design.
type WriteDown struct {
	ItemID   string
	Quantity int
}

// ValidateReturn checks a requested transition against an entry without
// applying it.
func ValidateReturn(e models.CheckoutEntry, r Return) error {
	if e.Returned {
		return ErrAlreadyReturned
	}
	if r.ReturnQty < 0 || r.ReturnQty > e.Quantity {
		return fmt.Errorf("%w: return %d of %d", ErrInvalidQuantity, r.ReturnQty, e.Quantity)
	}
	if r.DamagedQty < 0 || r.DamagedQty > e.Quantity-r.ReturnQty {
		return fmt.Errorf("%w: damaged %d with %d unaccounted", ErrInvalidQuantity, r.DamagedQty, e.Quantity-r.ReturnQty)
	}
	if r.ReturnQty+r.DamagedQty < e.Quantity && !r.WriteOff {
		return ErrPartialReturn
	}
	return nil
}

// ApplyReturn performs the transition on a validated entry. The entry
// becomes terminal regardless of how many units were accounted for; a
// write-off of the shortfall is recorded in the note. The returned
// WriteDown is nil when no damage was reported.
func ApplyReturn(e models.CheckoutEntry, r Return) (models.CheckoutEntry, *WriteDown) {
	e.Returned = true
	e.ReturnedQuantity = r.ReturnQty

	if short := e.Quantity - r.ReturnQty - r.DamagedQty; short > 0 {
		note := fmt.Sprintf("written off %d", short)
		if strings.TrimSpace(e.Note) != "" {
			note = e.Note + "; " + note
		}
		e.Note = note
	}

	if r.DamagedQty > 0 {
		return e, &WriteDown{ItemID: e.ItemID, Quantity: r.DamagedQty}
	}
	return e, nil
}

// BulkReturn is the transition applied by the return-everything shortcut:
// full quantity back, nothing damaged.
func BulkReturn(e models.CheckoutEntry) Return {
	return Return{ReturnQty: e.Quantity}
}
