package model

import (
	"math"
	"time"
)

// Category groups products on the menu. Owned by exactly one tenant and
// hard-deleted on removal.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TenantID    uint      `json:"tenant_id" gorm:"index;not null;comment:'Tenant this category belongs to'"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a menu item. Prices are stored in currency minor units.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	TenantID      uint      `json:"tenant_id" gorm:"index;not null;comment:'Tenant this product belongs to'"`
	CategoryID    uint      `json:"category_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Price         int64     `json:"price" gorm:"not null"`
	DiscountPrice *int64    `json:"discount_price,omitempty"`
	Description   string    `json:"description" gorm:"type:text"`
	ImageURL      string    `json:"image_url" gorm:"type:text"`
	Active        bool      `json:"active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OnSale reports whether the product carries an effective discount. A
// discount price equal to or above the list price counts as no discount.
func (p *Product) OnSale() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}

// EffectivePrice returns the discount price when the product is on sale,
// the list price otherwise.
func (p *Product) EffectivePrice() int64 {
	if p.OnSale() {
		return *p.DiscountPrice
	}
	return p.Price
}

// SalePercent returns the discount-off badge value rounded to the nearest
// integer, 0 when the product is not on sale.
func (p *Product) SalePercent() int {
	if !p.OnSale() || p.Price <= 0 {
		return 0
	}
	off := float64(p.Price-*p.DiscountPrice) / float64(p.Price) * 100
	return int(math.Round(off))
}
