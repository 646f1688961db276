package order

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2.50", "2.5", false},
		{" $3.75 ", "3.75", false},
		{"$ 2", "2", false},
		{"abc", "", true},
		{"", "", true},
		{"-1.00", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParsePrice(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Fatalf("ParsePrice(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestComputeTotal_SingleLine(t *testing.T) {
	total, err := ComputeTotal([]Item{{MenuItemID: 1, Price: "2.50", Quantity: 2}})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if FormatMoney(total) != "5.00" {
		t.Fatalf("total=%s, want 5.00", FormatMoney(total))
	}
}

// Summing line by line in decimal must never drift, whatever the mix.
func TestComputeTotal_MatchesCents(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		var (
			items []Item
			cents int64
		)
		for n := rng.Intn(8) + 1; n > 0; n-- {
			c := rng.Int63n(100000)
			q := rng.Intn(20) + 1
			items = append(items, Item{Price: decimal.New(c, -2).StringFixed(2), Quantity: q})
			cents += c * int64(q)
		}
		total, err := ComputeTotal(items)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if want := decimal.New(cents, -2); !total.Equal(want) {
			t.Fatalf("round %d: total=%s, want %s", round, total, want)
		}
	}
}

func TestTotalsMatch(t *testing.T) {
	five := decimal.RequireFromString("5.00")
	if !TotalsMatch(five, decimal.RequireFromString("5.004")) {
		t.Fatalf("5.004 should match 5.00")
	}
	if TotalsMatch(five, decimal.RequireFromString("5.01")) {
		t.Fatalf("5.01 should not match 5.00")
	}
}
