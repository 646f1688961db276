package order

import (
	"fmt"
	"strings"

	"github.com/MikeMC777/cafelove/internal/apperr"
)

const (
	maxItems    = 50
	maxQuantity = 100
)

func validateItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return apperr.Validation("items", "items are required")
	}
	if len(items) > maxItems {
		return apperr.Validation("items", fmt.Sprintf("a maximum of %d items is allowed", maxItems))
	}
	for i, it := range items {
		if err := validateItem(it, i); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(it CreateOrderItem, index int) error {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", index, name) }

	if it.MenuItemID <= 0 {
		return apperr.Validation(field("id"), "item id is required")
	}
	if it.Quantity < 1 {
		return apperr.Validation(field("quantity"), "item quantity must be at least 1")
	}
	if it.Quantity > maxQuantity {
		return apperr.Validation(field("quantity"), fmt.Sprintf("item quantity must be at most %d", maxQuantity))
	}
	if strings.TrimSpace(it.Address) == "" {
		return apperr.Validation(field("address"), "delivery address is required")
	}
	return nil
}
