package order

import "time"

const (
	StatusPending         = "pending"
	PaymentCashOnDelivery = "cash on delivery"
)

// Order is stored as one document: the items live in a JSONB column.
// swagger:model Order
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Items         []Item    `json:"items"`
	Total         string    `json:"total"` // NUMERIC -> string
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item is one line of an order.
// swagger:model OrderItem
type Item struct {
	MenuItemID int    `json:"id"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Address    string `json:"address"`
}
