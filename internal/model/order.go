package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order statuses. Orders arrive as pending and move to confirmed or
// cancelled; totals are never recomputed after ingest.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// CartItem is a line-item snapshot embedded in an order. Names are plain
// text copies taken at ordering time, so deleting a catalog product never
// corrupts order history.
type CartItem struct {
	Name      string `json:"name,omitempty"`
	Product   string `json:"product,omitempty"` // legacy field name used by older bot payloads
	ProductID uint   `json:"product_id,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	UnitPrice int64  `json:"unit_price,omitempty"`
}

// DisplayName resolves the item label, falling back to the legacy product
// field and finally to "Unknown".
func (i CartItem) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Product != "" {
		return i.Product
	}
	return "Unknown"
}

// Count returns the quantity, defaulting to 1 when absent.
func (i CartItem) Count() int {
	if i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

// CartItems is stored as a jsonb column on orders.
type CartItems []CartItem

// Value implements driver.Valuer for jsonb storage.
func (c CartItems) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb storage.
func (c *CartItems) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported cart items column type %T", value)
	}
	return json.Unmarshal(data, c)
}

// Order is an append-mostly record created by the external ordering
// channel. The back office only reads totals and flips status.
type Order struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TenantID     uint      `json:"tenant_id" gorm:"index;not null;comment:'Tenant this order belongs to'"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(255)"`
	Items        CartItems `json:"items" gorm:"type:jsonb"`
	Total        int64     `json:"total" gorm:"not null;comment:'Currency minor units'"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PlacedAt     time.Time `json:"placed_at" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
