// Package notify fans "order placed" events out to the kitchen and admins.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/MikeMC777/cafelove/internal/order"
)

// OrderPlacedEvent is the wire shape published for every new order.
type OrderPlacedEvent struct {
	OrderID       string       `json:"order_id"`
	UserID        string       `json:"user_id"`
	Total         string       `json:"total"`
	PaymentMethod string       `json:"payment_method"`
	Items         []order.Item `json:"items"`
	PlacedAt      time.Time    `json:"placed_at"`
}

func NewOrderPlacedEvent(o order.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Items:         o.Items,
		PlacedAt:      o.CreatedAt.UTC(),
	}
}

// Multi calls every notifier and joins their errors.
type Multi []order.Notifier

func (m Multi) OrderPlaced(ctx context.Context, o order.Order) error {
	var errs []error
	for _, n := range m {
		if err := n.OrderPlaced(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) OrderPlaced(context.Context, order.Order) error { return nil }
