// internal/domain/cart/ledger.go
package cart

import (
	"github.com/your-org/storefront/internal/domain/catalog"
)

// Ledger is the in-memory quantity-by-product state backing the shopping
// cart. It holds at most one Item per product id, preserves insertion
// order across merges, and performs no I/O: the state container persists
// a snapshot after each transition.
type Ledger struct {
	items []Item
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add merges the quantity into an existing item for the same product id,
// keeping its position, or appends a new item at the end. Quantities
// below 1 are clamped to 1. Stock limits are advisory only; no upper
// bound is enforced here.
func (l *Ledger) Add(p catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range l.items {
		if l.items[i].Product.ID == p.ID {
			l.items[i].Quantity += quantity
			return
		}
	}
	l.items = append(l.items, Item{Product: p, Quantity: quantity})
}

// Remove deletes the item for the product id. Removing an absent product
// is a no-op.
func (l *Ledger) Remove(productID int64) {
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity for the product id, clamped to at least
// 1: a decrement below 1 never removes the item. No-op if absent.
func (l *Ledger) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			l.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.items = nil
}

// Restore replaces the ledger contents with a persisted snapshot.
func (l *Ledger) Restore(items []Item) {
	l.items = items
}

// Items returns a copy of the item sequence in insertion order.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Quantity returns the quantity for a product id, 0 if absent.
func (l *Ledger) Quantity(productID int64) int {
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			return l.items[i].Quantity
		}
	}
	return 0
}

// Len returns the number of distinct products in the cart.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Totals derives the cart summary on demand; nothing is stored.
func (l *Ledger) Totals() Totals {
	t := Totals{ItemCount: len(l.items)}
	for _, item := range l.items {
		t.TotalQuantity += item.Quantity
		t.Subtotal += item.Subtotal()
	}
	return t
}
