// Package cart holds the per-session staging rules: what may be added to a
// cart and at what quantity, validated against a stock snapshot taken at
// call time. The limit is advisory; checkout re-validates against the store.
package cart

import "errors"

var ErrInvalidQuantity = errors.New("invalid quantity")
var ErrInsufficientStock = errors.New("insufficient stock")

// Cart maps item id to requested quantity. It is owned by one session and
// never shared; persistence is the caller's concern.
type Cart map[string]int

// Add puts qty more units of an item into the cart. qty must be a positive
// integer no greater than the item's remaining stock. On error the cart is
// unchanged.
func (c Cart) Add(itemID string, qty, remaining int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > remaining {
		return ErrInsufficientStock
	}
	c[itemID] += qty
	return nil
}

// SetQuantity replaces a cart line. The ceiling is remaining plus the line's
// current quantity, so a user can always keep at least what they already
// staged. Zero removes the line.
func (c Cart) SetQuantity(itemID string, qty, remaining int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}
	if qty > remaining+c[itemID] {
		return ErrInsufficientStock
	}
	if qty == 0 {
		delete(c, itemID)
		return nil
	}
	c[itemID] = qty
	return nil
}

func (c Cart) Empty() bool { return len(c) == 0 }

// Clear empties the cart in place.
func (c Cart) Clear() {
	for id := range c {
		delete(c, id)
	}
}

// Clone returns an independent copy.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}
