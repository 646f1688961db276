package cart

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/MikeMC777/cafelove/internal/menu"
)

func newCart() *Cart { return New(menu.DefaultItems("")) }

func TestAdd_InsertsThenIncrements(t *testing.T) {
	c := newCart()
	if err := c.Add(1); err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = c.Add(101)
	_ = c.Add(1)

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("len=%d, want 2", len(lines))
	}
	if lines[0].ItemID != 1 || lines[0].Quantity != 2 || lines[0].Title != "Espresso" || lines[0].Price != "2.50" {
		t.Fatalf("first line=%+v", lines[0])
	}
	if lines[1].ItemID != 101 || lines[1].Quantity != 1 {
		t.Fatalf("second line=%+v", lines[1])
	}
}

func TestAdd_UnknownItem(t *testing.T) {
	c := newCart()
	if err := c.Add(999); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("err=%v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("cart should stay empty")
	}
}

func TestRemove(t *testing.T) {
	c := newCart()
	_ = c.Add(1)
	_ = c.Add(2)
	_ = c.Add(3)

	c.Remove(2)
	c.Remove(42)

	lines := c.Lines()
	if len(lines) != 2 || lines[0].ItemID != 1 || lines[1].ItemID != 3 {
		t.Fatalf("lines=%+v", lines)
	}
	// index must follow the shifted line
	_ = c.Add(3)
	if c.Lines()[1].Quantity != 2 {
		t.Fatalf("lines=%+v", c.Lines())
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := newCart()
	_ = c.Add(1)

	if err := c.UpdateQuantity(1, 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := c.UpdateQuantity(1, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err=%v", err)
	}
	if err := c.UpdateQuantity(1, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err=%v", err)
	}
	if q := c.Lines()[0].Quantity; q != 4 {
		t.Fatalf("quantity=%d, want 4", q)
	}
	if err := c.UpdateQuantity(2, 1); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("err=%v", err)
	}
}

func TestClearAndSubtotal(t *testing.T) {
	c := newCart()
	_ = c.Add(1)
	_ = c.Add(1)
	_ = c.Add(102)

	got, err := c.Subtotal()
	if err != nil {
		t.Fatalf("subtotal: %v", err)
	}
	if got.StringFixed(2) != "7.25" {
		t.Fatalf("subtotal=%s", got.StringFixed(2))
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len=%d after clear", c.Len())
	}
	got, _ = c.Subtotal()
	if !got.IsZero() {
		t.Fatalf("subtotal=%s after clear", got)
	}
}

func TestLinesIsACopy(t *testing.T) {
	c := newCart()
	_ = c.Add(1)
	c.Lines()[0].Quantity = 0
	if c.Lines()[0].Quantity != 1 {
		t.Fatalf("caller mutated cart state")
	}
}

func TestQuantityNeverBelowOne(t *testing.T) {
	ids := []int{1, 2, 3, 101, 102, 999}
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 200; run++ {
		c := newCart()
		for step := 0; step < 50; step++ {
			id := ids[rng.Intn(len(ids))]
			switch rng.Intn(3) {
			case 0:
				_ = c.Add(id)
			case 1:
				c.Remove(id)
			case 2:
				_ = c.UpdateQuantity(id, rng.Intn(7)-3)
			}
			for _, l := range c.Lines() {
				if l.Quantity < 1 {
					t.Fatalf("run %d step %d: line %+v", run, step, l)
				}
			}
		}
	}
}
