package menu

import "sort"

type Category string

const (
	CategoryBeverage Category = "beverage"
	CategorySweet    Category = "sweet"
)

func (c Category) Valid() bool {
	return c == CategoryBeverage || c == CategorySweet
}

type Item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	// Price is kept as the NUMERIC text to avoid float rounding.
	Price    string   `json:"price"`
	Img      string   `json:"img"`
	Desc     string   `json:"desc"`
	Category Category `json:"category"`
}

// Menu is the public catalog grouped by category.
// swagger:model Menu
type Menu struct {
	Beverages []Item `json:"beverages"`
	Sweets    []Item `json:"sweets"`
}

// Group splits items by category, each group ordered by id.
func Group(items []Item) Menu {
	out := Menu{Beverages: []Item{}, Sweets: []Item{}}
	for _, it := range items {
		switch it.Category {
		case CategoryBeverage:
			out.Beverages = append(out.Beverages, it)
		case CategorySweet:
			out.Sweets = append(out.Sweets, it)
		}
	}
	sort.Slice(out.Beverages, func(i, j int) bool { return out.Beverages[i].ID < out.Beverages[j].ID })
	sort.Slice(out.Sweets, func(i, j int) bool { return out.Sweets[i].ID < out.Sweets[j].ID })
	return out
}

// All flattens a grouped menu back into a single list.
func (m Menu) All() []Item {
	out := make([]Item, 0, len(m.Beverages)+len(m.Sweets))
	out = append(out, m.Beverages...)
	return append(out, m.Sweets...)
}

// SeedResponse is returned by the reseed endpoint.
// swagger:model SeedResponse
type SeedResponse struct {
	Message string `json:"message" example:"menu seeded"`
	Count   int    `json:"count"   example:"5"`
}
