// internal/domain/cart/ledger_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/money"
)

var (
	lamp = catalog.Product{ID: 1, Slug: "desk-lamp", Name: "Desk Lamp", Price: "89.00"}
	mug  = catalog.Product{ID: 2, Slug: "ceramic-mug", Name: "Ceramic Mug", Price: "14.50"}
	pen  = catalog.Product{ID: 3, Slug: "fountain-pen", Name: "Fountain Pen", Price: "32.00"}
)

func TestLedgerAdd(t *testing.T) {
	t.Run("appends new products in insertion order", func(t *testing.T) {
		l := NewLedger()
		l.Add(lamp, 1)
		l.Add(mug, 2)

		items := l.Items()
		assert.Equal(t, int64(1), items[0].Product.ID)
		assert.Equal(t, int64(2), items[1].Product.ID)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("merges quantity into an existing line without moving it", func(t *testing.T) {
		l := NewLedger()
		l.Add(lamp, 1)
		l.Add(mug, 1)
		l.Add(lamp, 3)

		items := l.Items()
		assert.Equal(t, int64(1), items[0].Product.ID, "merged line keeps its position")
		assert.Equal(t, 4, items[0].Quantity)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("clamps non-positive quantities to one", func(t *testing.T) {
		l := NewLedger()
		l.Add(lamp, 0)
		assert.Equal(t, 1, l.Quantity(lamp.ID))

		l.Add(mug, -5)
		assert.Equal(t, 1, l.Quantity(mug.ID))
	})
}

func TestLedgerRemove(t *testing.T) {
	l := NewLedger()
	l.Add(lamp, 1)
	l.Add(mug, 1)
	l.Add(pen, 1)

	l.Remove(mug.ID)
	assert.Equal(t, 2, l.Len())
	assert.Zero(t, l.Quantity(mug.ID))

	// Absent product is a no-op.
	l.Remove(99)
	assert.Equal(t, 2, l.Len())
}

func TestLedgerSetQuantity(t *testing.T) {
	t.Run("sets the quantity directly", func(t *testing.T) {
		l := NewLedger()
		l.Add(lamp, 1)
		l.SetQuantity(lamp.ID, 7)
		assert.Equal(t, 7, l.Quantity(lamp.ID))
	})

	t.Run("never drops below one", func(t *testing.T) {
		l := NewLedger()
		l.Add(lamp, 3)
		l.SetQuantity(lamp.ID, 0)
		assert.Equal(t, 1, l.Quantity(lamp.ID), "decrement below one keeps the item")
	})

	t.Run("ignores absent products", func(t *testing.T) {
		l := NewLedger()
		l.SetQuantity(42, 5)
		assert.Zero(t, l.Len())
	})
}

func TestLedgerTotals(t *testing.T) {
	t.Run("sums quantities and line subtotals", func(t *testing.T) {
		l := NewLedger()
		l.Add(lamp, 2) // 178.00
		l.Add(mug, 3)  // 43.50

		got := l.Totals()
		assert.Equal(t, 2, got.ItemCount)
		assert.Equal(t, 5, got.TotalQuantity)
		assert.Equal(t, money.MustParse("221.50"), got.Subtotal)
	})

	t.Run("unparseable price contributes nothing", func(t *testing.T) {
		l := NewLedger()
		l.Add(catalog.Product{ID: 9, Price: "n/a"}, 2)
		l.Add(mug, 1)

		assert.Equal(t, money.MustParse("14.50"), l.Totals().Subtotal)
	})

	t.Run("empty cart totals to zero", func(t *testing.T) {
		assert.Equal(t, Totals{}, NewLedger().Totals())
	})
}

func TestLedgerItemsIsACopy(t *testing.T) {
	l := NewLedger()
	l.Add(lamp, 1)

	items := l.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, l.Quantity(lamp.ID), "mutating the copy must not touch the ledger")
}

func TestLedgerRestore(t *testing.T) {
	l := NewLedger()
	l.Add(lamp, 1)

	l.Restore([]Item{{Product: mug, Quantity: 4}})
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 4, l.Quantity(mug.ID))
	assert.Zero(t, l.Quantity(lamp.ID))
}
