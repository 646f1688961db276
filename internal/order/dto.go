package order

import "github.com/shopspring/decimal"

// CreateOrderItem payload de ítem.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	MenuItemID int    `json:"id"       example:"1"`
	Title      string `json:"title"    example:"Espresso"`
	Price      string `json:"price"    example:"2.50"`
	Quantity   int    `json:"quantity" example:"2"`
	Address    string `json:"address"  example:"Av. Larco 123"`
}

// CreateOrderRequest payload de creación de orden. Total is optional; when
// present it must match the server-side total.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
	Total *decimal.Decimal  `json:"total,omitempty" swaggertype:"number" example:"5.00"`
}

// CreateOrderResponse
// swagger:model CreateOrderResponse
type CreateOrderResponse struct {
	Message string `json:"message" example:"Order placed successfully"`
	Order   Order  `json:"order"`
}
