// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/pkg/money"
)

// Item pairs a product snapshot with a quantity. The snapshot is frozen
// at add time; later catalog refreshes do not rewrite it.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price * quantity in cents. An unparseable price
// contributes nothing rather than failing the whole total.
func (i Item) Subtotal() money.Cents {
	c, err := money.Parse(i.Product.Price)
	if err != nil {
		return 0
	}
	return c * money.Cents(i.Quantity)
}

// Totals summarizes a cart for display and order placement.
type Totals struct {
	ItemCount     int         `json:"item_count"`     // distinct products
	TotalQuantity int         `json:"total_quantity"` // sum of quantities
	Subtotal      money.Cents `json:"subtotal"`
}
