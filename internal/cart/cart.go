// Package cart aggregates menu selections before checkout. A Cart lives in
// client memory only and is not safe for concurrent use.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafelove/internal/menu"
	"github.com/MikeMC777/cafelove/internal/order"
)

var (
	ErrUnknownItem     = errors.New("unknown menu item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart       = errors.New("item not in cart")
)

type Line struct {
	ItemID   int
	Title    string
	Price    string
	Quantity int
	Img      string
	Desc     string
}

type Cart struct {
	catalog map[int]menu.Item
	lines   []Line
	index   map[int]int // item id -> position in lines
}

// New returns an empty cart that accepts only items from catalog.
func New(catalog []menu.Item) *Cart {
	c := &Cart{
		catalog: make(map[int]menu.Item, len(catalog)),
		index:   map[int]int{},
	}
	for _, it := range catalog {
		c.catalog[it.ID] = it
	}
	return c
}

// Add puts one more unit of itemID in the cart.
func (c *Cart) Add(itemID int) error {
	if i, ok := c.index[itemID]; ok {
		c.lines[i].Quantity++
		return nil
	}
	it, ok := c.catalog[itemID]
	if !ok {
		return ErrUnknownItem
	}
	c.index[itemID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ItemID:   it.ID,
		Title:    it.Title,
		Price:    it.Price,
		Quantity: 1,
		Img:      it.Img,
		Desc:     it.Desc,
	})
	return nil
}

func (c *Cart) Remove(itemID int) {
	i, ok := c.index[itemID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, itemID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ItemID] = j
	}
}

func (c *Cart) UpdateQuantity(itemID, q int) error {
	if q < 1 {
		return ErrInvalidQuantity
	}
	i, ok := c.index[itemID]
	if !ok {
		return ErrNotInCart
	}
	c.lines[i].Quantity = q
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[int]int{}
}

// Lines returns a copy of the lines in the order they were first added.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// Subtotal is Σ price × quantity over all lines.
func (c *Cart) Subtotal() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range c.lines {
		p, err := order.ParsePrice(l.Price)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total, nil
}
