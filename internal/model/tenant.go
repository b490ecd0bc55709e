package model

import (
	"time"
)

// Tenant represents one restaurant account. It is the isolation boundary
// for every other entity: all domain rows carry its id and are never
// shared across tenants.
type Tenant struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID          uint      `json:"owner_id" gorm:"uniqueIndex;not null;comment:'User that created the restaurant, exactly one tenant per user'"`
	Email            string    `json:"email" gorm:"type:varchar(100)"`
	ContactPhone     string    `json:"contact_phone" gorm:"type:varchar(30)"`
	Address          string    `json:"address" gorm:"type:text"`
	City             string    `json:"city" gorm:"type:varchar(100)"`
	LogoURL          string    `json:"logo_url" gorm:"type:text"`
	IsOpen           bool      `json:"is_open" gorm:"default:true"`
	DeliveryRadiusKm float64   `json:"delivery_radius_km" gorm:"default:5"`
	BaseDeliveryFee  int64     `json:"base_delivery_fee" gorm:"default:0;comment:'Currency minor units'"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// User represents a back-office account holder
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
