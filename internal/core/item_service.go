package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemService owns item master data and the explicit stock update
// operation (the purchase-side goods-inward path — purchases never touch
// stock automatically).
type ItemService interface {
	CreateItem(ctx context.Context, item *Item) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context, f ItemFilter) ([]*Item, error)
	UpdateItem(ctx context.Context, item *Item) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, id string, in StockUpdateInput) (*Item, error)
}

// StockUpdateInput describes an explicit stock adjustment. Operation is
// "add", "subtract" or "set"; for "set", nil fields keep their current
// value.
type StockUpdateInput struct {
	Operation string
	Quantity  *decimal.Decimal
	Weight    *decimal.Decimal
	Bags      *decimal.Decimal
}

type itemService struct {
	store Store
}

func NewItemService(store Store) ItemService {
	return &itemService{store: store}
}

func validateItem(item *Item) error {
	if item.Name == "" {
		return validationf("item name is required")
	}
	if item.HSNCode == "" {
		return validationf("HSN code is required")
	}
	ok := false
	for _, r := range GSTRates {
		if item.GST.Rate.Equal(decimal.NewFromInt(r)) {
			ok = true
			break
		}
	}
	if !ok {
		return validationf("GST rate %s is not a valid bracket", item.GST.Rate.String())
	}
	return nil
}

// recomputeGSTSplit re-derives the split rate fields from the bracket
// rate. Runs on every save so the split can never drift from the rate.
func recomputeGSTSplit(item *Item) {
	half := item.GST.Rate.Div(decimal.NewFromInt(2))
	item.GST.CGST = half
	item.GST.SGST = half
	item.GST.IGST = item.GST.Rate
}

func (s *itemService) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	recomputeGSTSplit(item)

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = "active"
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.store.PutItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("item %s", id)
		}
		return nil, fmt.Errorf("fetch item: %w", err)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, f ItemFilter) ([]*Item, error) {
	return s.store.ListItems(ctx, f)
}

func (s *itemService) UpdateItem(ctx context.Context, item *Item) (*Item, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	recomputeGSTSplit(item)
	item.UpdatedAt = time.Now()

	if err := s.store.PutItem(ctx, item); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("item %s", item.ID)
		}
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFoundf("item %s", id)
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *itemService) UpdateStock(ctx context.Context, id string, in StockUpdateInput) (*Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundf("item %s", id)
		}
		return nil, fmt.Errorf("fetch item: %w", err)
	}

	zeroIfNil := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}

	switch in.Operation {
	case "add":
		item.Stock.Quantity = item.Stock.Quantity.Add(zeroIfNil(in.Quantity))
		item.Stock.Weight = item.Stock.Weight.Add(zeroIfNil(in.Weight))
		item.Stock.Bags = item.Stock.Bags.Add(zeroIfNil(in.Bags))
	case "subtract":
		item.Stock.Quantity = item.Stock.Quantity.Sub(zeroIfNil(in.Quantity))
		item.Stock.Weight = item.Stock.Weight.Sub(zeroIfNil(in.Weight))
		item.Stock.Bags = item.Stock.Bags.Sub(zeroIfNil(in.Bags))
	case "set":
		if in.Quantity != nil {
			item.Stock.Quantity = *in.Quantity
		}
		if in.Weight != nil {
			item.Stock.Weight = *in.Weight
		}
		if in.Bags != nil {
			item.Stock.Bags = *in.Bags
		}
	default:
		return nil, validationf("unknown stock operation %q", in.Operation)
	}

	item.UpdatedAt = time.Now()
	if err := s.store.PutItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}
