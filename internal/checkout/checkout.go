// Package checkout turns a cart into an order submission.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/cart"
	"github.com/MikeMC777/cafelove/internal/client"
	"github.com/MikeMC777/cafelove/internal/order"
)

// OrderPlacer sends an order for the session user. *client.Client implements it.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, s *client.Session, req order.CreateOrderRequest) (*order.Order, error)
}

// AddressPolicy resolves the delivery address of each line. A per-item
// address wins over Global.
type AddressPolicy struct {
	Global  string
	PerItem map[int]string
}

func (p AddressPolicy) Resolve(itemID int) string {
	if a := strings.TrimSpace(p.PerItem[itemID]); a != "" {
		return a
	}
	return strings.TrimSpace(p.Global)
}

type Submitter struct {
	placer OrderPlacer
}

func NewSubmitter(placer OrderPlacer) *Submitter {
	return &Submitter{placer: placer}
}

// Build converts the cart lines into an order request with its total.
func Build(c *cart.Cart, policy AddressPolicy) (order.CreateOrderRequest, error) {
	if c == nil || c.Len() == 0 {
		return order.CreateOrderRequest{}, apperr.Validation("items", "cart is empty")
	}
	lines := c.Lines()
	items := make([]order.CreateOrderItem, len(lines))
	for i, l := range lines {
		addr := policy.Resolve(l.ItemID)
		if addr == "" {
			return order.CreateOrderRequest{}, apperr.Validation(fmt.Sprintf("items[%d].address", i),
				fmt.Sprintf("no delivery address for %q", l.Title))
		}
		items[i] = order.CreateOrderItem{
			MenuItemID: l.ItemID,
			Title:      l.Title,
			Price:      l.Price,
			Quantity:   l.Quantity,
			Address:    addr,
		}
	}
	total, err := c.Subtotal()
	if err != nil {
		return order.CreateOrderRequest{}, apperr.Validation("items", err.Error())
	}
	return order.CreateOrderRequest{Items: items, Total: &total}, nil
}

// PlaceOrder submits the cart. The cart is cleared only when the order was
// accepted.
func (s *Submitter) PlaceOrder(ctx context.Context, sess *client.Session, c *cart.Cart, policy AddressPolicy) (*order.Order, error) {
	req, err := Build(c, policy)
	if err != nil {
		return nil, err
	}
	o, err := s.placer.PlaceOrder(ctx, sess, req)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return o, nil
}
