// internal/domain/order/entity.go
package order

import (
	"time"
)

// Status represents the order status reported by the remote API.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Order is an order as the remote API reports it. The client never
// mutates orders locally; cancellation goes through the API.
type Order struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      Status    `json:"status"`
	TotalAmount string    `json:"total_amount"` // Decimal string
	Items       []Item    `json:"items"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item is one line of an order.
type Item struct {
	ID           int64  `json:"id"`
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"` // Decimal string
	Quantity     int    `json:"quantity"`
	Subtotal     string `json:"subtotal"` // Decimal string
}

// CanBeCancelled reports whether the API will accept a cancel request
// for this order.
func (o *Order) CanBeCancelled() bool {
	switch o.Status {
	case StatusPending, StatusConfirmed, StatusProcessing:
		return true
	}
	return false
}
