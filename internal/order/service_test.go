package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/menu"
)

// memRepo implements Repository in memory.
type memRepo struct {
	mu     sync.Mutex
	orders []Order
	fail   error
	clock  time.Time
}

func (m *memRepo) Create(ctx context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.clock = m.clock.Add(time.Second)
	o.CreatedAt, o.UpdatedAt = m.clock, m.clock
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		return []Order{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memCatalog map[int]menu.Item

func (c memCatalog) GetByID(ctx context.Context, id int) (*menu.Item, error) {
	it, ok := c[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	return &it, nil
}

type recordingNotifier struct {
	got []Order
	err error
}

func (n *recordingNotifier) OrderPlaced(ctx context.Context, o Order) error {
	n.got = append(n.got, o)
	return n.err
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func testCatalog() memCatalog {
	c := memCatalog{}
	for _, it := range menu.DefaultItems("") {
		c[it.ID] = it
	}
	return c
}

func TestCreate_SingleItemScenario(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, testCatalog(), nil, quietLog())

	o, err := svc.Create(context.Background(), "u1", CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 1, Title: "Espresso", Price: "2.50", Quantity: 2, Address: "A"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Total != "5.00" {
		t.Fatalf("total=%s, want 5.00", o.Total)
	}
	if len(o.Items) != 1 || o.Items[0].Address != "A" {
		t.Fatalf("items=%+v", o.Items)
	}
	if o.Status != StatusPending || o.PaymentMethod != PaymentCashOnDelivery {
		t.Fatalf("defaults not applied: %+v", o)
	}
	if o.ID == "" || o.CreatedAt.IsZero() {
		t.Fatalf("id/timestamp not set: %+v", o)
	}
}

func TestCreate_StoredTotalMatchesRecomputed(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, testCatalog(), nil, quietLog())

	_, err := svc.Create(context.Background(), "u1", CreateOrderRequest{
		Items: []CreateOrderItem{
			{MenuItemID: 3, Quantity: 3, Address: "A"},
			{MenuItemID: 102, Quantity: 1, Address: "B"},
			{MenuItemID: 2, Quantity: 7, Address: "A"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stored := repo.orders[0]
	recomputed, err := ComputeTotal(stored.Items)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !recomputed.Equal(decimal.RequireFromString(stored.Total)) {
		t.Fatalf("stored total %s != recomputed %s", stored.Total, recomputed)
	}
	if stored.Total != "38.00" { // 3*3.75 + 2.25 + 7*3.50
		t.Fatalf("total=%s, want 38.00", stored.Total)
	}
}

func TestCreate_CatalogIsAuthoritative(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, testCatalog(), nil, quietLog())

	o, err := svc.Create(context.Background(), "u1", CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 1, Title: "Free coffee", Price: "0.01", Quantity: 1, Address: "A"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Items[0].Title != "Espresso" || o.Items[0].Price != "2.50" || o.Total != "2.50" {
		t.Fatalf("catalog values not applied: %+v", o)
	}
}

func TestCreate_ValidationFailuresStoreNothing(t *testing.T) {
	five := decimal.RequireFromString("5.00")
	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"empty items", CreateOrderRequest{}},
		{"zero quantity", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 0, Address: "A"}}}},
		{"blank address", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 1, Address: "  "}}}},
		{"quantity above cap", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Quantity: maxQuantity + 1, Address: "A"}}}},
		{"unknown item", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 999, Quantity: 1, Address: "A"}}}},
		{"missing id", CreateOrderRequest{Items: []CreateOrderItem{{Quantity: 1, Address: "A"}}}},
		{"total mismatch", CreateOrderRequest{
			Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 1, Address: "A"}},
			Total: &five,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			svc := NewService(repo, testCatalog(), nil, quietLog())
			_, err := svc.Create(context.Background(), "u1", tt.req)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("err=%v, want validation", err)
			}
			if len(repo.orders) != 0 {
				t.Fatalf("order stored despite validation failure")
			}
		})
	}
}

func TestCreate_WithoutCatalogValidatesSubmittedFields(t *testing.T) {
	svc := NewService(&memRepo{}, nil, nil, quietLog())
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Price: "2.50", Quantity: 1, Address: "A"}}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("missing title err=%v", err)
	}
	_, err = svc.Create(ctx, "u1", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Title: "X", Price: "cheap", Quantity: 1, Address: "A"}}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad price err=%v", err)
	}
	o, err := svc.Create(ctx, "u1", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Title: "X", Price: "$1.25", Quantity: 4, Address: "A"}}})
	if err != nil || o.Total != "5.00" {
		t.Fatalf("o=%+v err=%v", o, err)
	}
}

func TestCreate_TotalAboveColumnLimit(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil, nil, quietLog())
	req := CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Title: "Barrica", Price: "999999999.99", Quantity: 11, Address: "A"}}}
	_, err := svc.Create(context.Background(), "u1", req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v, esperaba validation", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("order stored despite overflowing total")
	}
}

func TestCreate_Unauthenticated(t *testing.T) {
	svc := NewService(&memRepo{}, testCatalog(), nil, quietLog())
	_, err := svc.Create(context.Background(), "", CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 1, Address: "A"}},
	})
	if !apperr.Is(err, apperr.KindAuthentication) {
		t.Fatalf("err=%v", err)
	}
}

func TestCreate_PersistenceErrorIsOpaque(t *testing.T) {
	repo := &memRepo{fail: errors.New("disk on fire")}
	svc := NewService(repo, testCatalog(), nil, quietLog())
	_, err := svc.Create(context.Background(), "u1", CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 1, Address: "A"}},
	})
	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind != apperr.KindPersistence {
		t.Fatalf("err=%v, want persistence", err)
	}
	if e.Public() != "internal error" {
		t.Fatalf("public=%q", e.Public())
	}
}

func TestCreate_NotifierFailureDoesNotFailOrder(t *testing.T) {
	n := &recordingNotifier{err: errors.New("broker down")}
	svc := NewService(&memRepo{}, testCatalog(), n, quietLog())

	o, err := svc.Create(context.Background(), "u1", CreateOrderRequest{
		Items: []CreateOrderItem{{MenuItemID: 101, Quantity: 2, Address: "A"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(n.got) != 1 || n.got[0].ID != o.ID {
		t.Fatalf("notifier got %+v", n.got)
	}
}

func TestList_IsolationAndOrdering(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, testCatalog(), nil, quietLog())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		for _, uid := range []string{"alice", "bob"} {
			_, err := svc.Create(ctx, uid, CreateOrderRequest{
				Items: []CreateOrderItem{{MenuItemID: 1, Quantity: i + 1, Address: fmt.Sprintf("%s-%d", uid, i)}},
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
		}
	}

	got, err := svc.List(ctx, "alice", "alice", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d, want 3", len(got))
	}
	for i, o := range got {
		if o.UserID != "alice" {
			t.Fatalf("foreign order leaked: %+v", o)
		}
		if i > 0 && o.CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("not newest first at %d", i)
		}
	}
	if got[0].Items[0].Address != "alice-2" {
		t.Fatalf("first order should be the latest, got %+v", got[0].Items)
	}
}

func TestList_Gates(t *testing.T) {
	svc := NewService(&memRepo{}, nil, nil, quietLog())
	ctx := context.Background()
	if _, err := svc.List(ctx, "", "alice", 0, 0); !apperr.Is(err, apperr.KindAuthentication) {
		t.Fatalf("unauthenticated err=%v", err)
	}
	if _, err := svc.List(ctx, "bob", "alice", 0, 0); !apperr.Is(err, apperr.KindAuthorization) {
		t.Fatalf("mismatched err=%v", err)
	}
}

func TestGet_OwnerOnly(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, testCatalog(), nil, quietLog())
	ctx := context.Background()
	o, _ := svc.Create(ctx, "alice", CreateOrderRequest{Items: []CreateOrderItem{{MenuItemID: 1, Quantity: 1, Address: "A"}}})

	if _, err := svc.Get(ctx, "alice", o.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(ctx, "bob", o.ID); !apperr.Is(err, apperr.KindAuthorization) {
		t.Fatalf("other user err=%v", err)
	}
	if _, err := svc.Get(ctx, "alice", "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("missing err=%v", err)
	}
}
