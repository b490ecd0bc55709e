package model

import (
	"strings"
	"time"
)

// Coupon discount types
const (
	DiscountPercentage  = "percentage"
	DiscountFixedAmount = "fixed_amount"
)

// Coupon scopes
const (
	ScopeWholeCart        = "whole_cart"
	ScopeSpecificProducts = "specific_products"
)

// ValidDiscountType reports whether t is a known discount type.
func ValidDiscountType(t string) bool {
	return t == DiscountPercentage || t == DiscountFixedAmount
}

// ValidCouponScope reports whether s is a known coupon scope.
func ValidCouponScope(s string) bool {
	return s == ScopeWholeCart || s == ScopeSpecificProducts
}

// NormalizeCouponCode uppercases and trims a coupon code. Codes are
// compared case-insensitively and stored normalized.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Coupon is a tenant-owned promotion. Only the Active flag is persisted
// state; expired/exhausted/scheduled are derived at evaluation time from
// the timestamps and the redemption counter.
type Coupon struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	TenantID       uint       `json:"tenant_id" gorm:"not null;uniqueIndex:idx_coupons_tenant_code;comment:'Tenant this coupon belongs to'"`
	Code           string     `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:idx_coupons_tenant_code"`
	Description    string     `json:"description" gorm:"type:text"`
	DiscountType   string     `json:"discount_type" gorm:"type:varchar(20);not null"`
	DiscountValue  int64      `json:"discount_value" gorm:"not null;comment:'Percent points or currency minor units'"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MaxRedemptions *int       `json:"max_redemptions,omitempty"`
	Redemptions    int        `json:"redemptions" gorm:"default:0;comment:'Incremented by order placement, read-only for evaluation'"`
	MinCartAmount  int64      `json:"min_cart_amount" gorm:"default:0"`
	Scope          string     `json:"scope" gorm:"type:varchar(30);not null;default:'whole_cart'"`
	Active         bool       `json:"active" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CouponProductLink joins coupons to the products they discount. Rows
// exist only while scope is specific_products; leftovers from a scope
// change are inert and ignored by evaluation.
type CouponProductLink struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CouponID  uint `json:"coupon_id" gorm:"index;not null"`
	ProductID uint `json:"product_id" gorm:"index;not null"`
}
