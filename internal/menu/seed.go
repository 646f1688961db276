package menu

import (
	"context"
	"strings"
)

// DefaultItems is the fixed catalog. Image URLs are rooted at assetBaseURL.
func DefaultItems(assetBaseURL string) []Item {
	base := strings.TrimRight(assetBaseURL, "/")
	img := func(p string) string { return base + "/src/assets/" + p }
	return []Item{
		{ID: 1, Title: "Espresso", Price: "2.50", Img: img("coffeeMenu/espresso.jpg"), Desc: "Bold and concentrated.", Category: CategoryBeverage},
		{ID: 2, Title: "Cappuccino", Price: "3.50", Img: img("coffeeMenu/cappuccino.jpg"), Desc: "Silky milk and espresso.", Category: CategoryBeverage},
		{ID: 3, Title: "Vanilla Latte", Price: "3.75", Img: img("coffeeMenu/vanillaLatte.jpg"), Desc: "Smooth latte with vanilla.", Category: CategoryBeverage},
		{ID: 101, Title: "Croissant", Price: "2.00", Img: img("signup-banner.jpg"), Desc: "Buttery and flaky.", Category: CategorySweet},
		{ID: 102, Title: "Blueberry Muffin", Price: "2.25", Img: img("signup-banner.jpg"), Desc: "Fresh berries inside.", Category: CategorySweet},
	}
}

// SeedIfEmpty seeds the catalog only when it has no items yet.
func SeedIfEmpty(ctx context.Context, repo Repository, items []Item) (bool, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := repo.Seed(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}
