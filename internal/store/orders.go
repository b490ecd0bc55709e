package store

import (
	"context"
	"time"

	"github.com/mikekiroz/maikitto-saas/internal/model"
	"github.com/mikekiroz/maikitto-saas/internal/tenant"
	"gorm.io/gorm"
)

// OrderFilter narrows an order listing. Date bounds are inclusive on
// placed_at; Customer matches the customer name as a case-insensitive
// substring.
type OrderFilter struct {
	From     *time.Time
	To       *time.Time
	Customer string
}

// OrderLedger is the append-mostly record of placed orders. Orders are
// created by the ordering channel; the back office lists them, flips
// status, and aggregates their totals.
type OrderLedger struct {
	db *gorm.DB
}

// NewOrderLedger creates an order ledger around the database handle.
func NewOrderLedger(db *gorm.DB) *OrderLedger {
	return &OrderLedger{db: db}
}

// List returns the tenant's orders matching the filter, newest first.
func (s *OrderLedger) List(ctx context.Context, tc tenant.Context, filter OrderFilter) ([]model.Order, error) {
	query := tenant.Scoped(s.db.WithContext(ctx), tc)

	if filter.From != nil {
		query = query.Where("placed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("placed_at <= ?", *filter.To)
	}
	if filter.Customer != "" {
		query = query.Where("customer_name ILIKE ?", "%"+filter.Customer+"%")
	}

	var orders []model.Order
	if err := query.Order("placed_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, wrapDB(err, "listing orders")
	}
	return orders, nil
}

// Get loads one order owned by the tenant.
func (s *OrderLedger) Get(ctx context.Context, tc tenant.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := tenant.Scoped(s.db.WithContext(ctx), tc).First(&order, id).Error
	if err != nil {
		return nil, wrapDB(err, "loading order")
	}
	return &order, nil
}

// Create appends an order for the tenant. Totals come from the ordering
// channel and are stored as-is.
func (s *OrderLedger) Create(ctx context.Context, tc tenant.Context, order *model.Order) error {
	order.TenantID = tc.TenantID
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return wrapDB(err, "creating order")
	}
	return nil
}

// CreateRedeeming appends the order and counts one redemption on the
// coupon, in a single transaction: a failed insert never moves the
// counter. A zero couponID skips the redemption and only inserts.
func (s *OrderLedger) CreateRedeeming(ctx context.Context, tc tenant.Context, order *model.Order, couponID uint) error {
	if couponID == 0 {
		return s.Create(ctx, tc, order)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewCouponStore(tx).IncrementRedemptions(ctx, tc, couponID); err != nil {
			return err
		}
		return NewOrderLedger(tx).Create(ctx, tc, order)
	})
}

// UpdateStatus moves an order to a new status. The total and line items
// are never touched after ingest.
func (s *OrderLedger) UpdateStatus(ctx context.Context, tc tenant.Context, id uint, status string) (*model.Order, error) {
	order, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, wrapDB(err, "updating order status")
	}
	order.Status = status
	return order, nil
}
