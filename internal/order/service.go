// Package order persists café orders and enforces their invariants.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/cafelove/internal/apperr"
	"github.com/MikeMC777/cafelove/internal/menu"
)

// Catalog resolves menu items; its title and price are authoritative.
type Catalog interface {
	GetByID(ctx context.Context, id int) (*menu.Item, error)
}

// Notifier is told about every persisted order. Failures are only logged.
type Notifier interface {
	OrderPlaced(ctx context.Context, o Order) error
}

type Service struct {
	repo     Repository
	catalog  Catalog
	notifier Notifier
	log      *logrus.Entry

	notifyTimeout time.Duration
}

// NewService wires the order store. catalog and notifier may be nil.
func NewService(repo Repository, catalog Catalog, notifier Notifier, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		repo:          repo,
		catalog:       catalog,
		notifier:      notifier,
		log:           log.WithField("component", "order"),
		notifyTimeout: 5 * time.Second,
	}
}

// Create validates the request, recomputes the total and stores the order
// for userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error) {
	if userID == "" {
		return nil, apperr.Authentication("not authenticated")
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	items := make([]Item, len(req.Items))
	for i, in := range req.Items {
		it, err := s.resolveItem(ctx, in, i)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}

	total, err := ComputeTotal(items)
	if err != nil {
		return nil, apperr.Validation("items", err.Error())
	}
	if total.GreaterThan(maxTotal) {
		return nil, apperr.Validation("total", fmt.Sprintf("order total exceeds %s", FormatMoney(maxTotal)))
	}
	if req.Total != nil && !TotalsMatch(*req.Total, total) {
		return nil, apperr.Validation("total", fmt.Sprintf("total %s does not match items total %s",
			FormatMoney(*req.Total), FormatMoney(total)))
	}

	o := &Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         items,
		Total:         FormatMoney(total),
		Status:        StatusPending,
		PaymentMethod: PaymentCashOnDelivery,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperr.Persistence("create order", err)
	}

	s.notify(ctx, *o)
	return o, nil
}

func (s *Service) resolveItem(ctx context.Context, in CreateOrderItem, index int) (Item, error) {
	it := Item{
		MenuItemID: in.MenuItemID,
		Title:      strings.TrimSpace(in.Title),
		Price:      strings.TrimSpace(in.Price),
		Quantity:   in.Quantity,
		Address:    strings.TrimSpace(in.Address),
	}
	if s.catalog != nil {
		mi, err := s.catalog.GetByID(ctx, in.MenuItemID)
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				return Item{}, apperr.Validation(fmt.Sprintf("items[%d].id", index),
					fmt.Sprintf("unknown menu item %d", in.MenuItemID))
			}
			return Item{}, apperr.Persistence("lookup menu item", err)
		}
		it.Title = mi.Title
		it.Price = mi.Price
	}
	if it.Title == "" {
		return Item{}, apperr.Validation(fmt.Sprintf("items[%d].title", index), "item title is required")
	}
	if _, err := ParsePrice(it.Price); err != nil {
		return Item{}, apperr.Validation(fmt.Sprintf("items[%d].price", index), err.Error())
	}
	return it, nil
}

func (s *Service) notify(ctx context.Context, o Order) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	if err := s.notifier.OrderPlaced(ctx, o); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Warn("order notification failed")
	}
}

// List returns ownerID's orders, newest first. Only the owner may list them.
func (s *Service) List(ctx context.Context, callerID, ownerID string, limit, offset int) ([]Order, error) {
	if callerID == "" {
		return nil, apperr.Authentication("not authenticated")
	}
	if callerID != ownerID {
		return nil, apperr.Authorization("cannot list another user's orders")
	}
	out, err := s.repo.ListByUser(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, apperr.Persistence("list orders", err)
	}
	return out, nil
}

// Get returns one order if it belongs to callerID.
func (s *Service) Get(ctx context.Context, callerID, orderID string) (*Order, error) {
	if callerID == "" {
		return nil, apperr.Authentication("not authenticated")
	}
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Persistence("get order", err)
	}
	if o.UserID != callerID {
		return nil, apperr.Authorization("order belongs to another user")
	}
	return o, nil
}
