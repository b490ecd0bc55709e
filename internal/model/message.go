package model

import "time"

// Bot message types
const (
	MessageWelcome            = "welcome"
	MessageFarewellPurchase   = "farewell_purchase"
	MessageFarewellNoPurchase = "farewell_no_purchase"
)

// ValidMessageType reports whether t is a known bot message type.
func ValidMessageType(t string) bool {
	switch t {
	case MessageWelcome, MessageFarewellPurchase, MessageFarewellNoPurchase:
		return true
	}
	return false
}

// MessageTemplate is the global default copy for a bot message type. It
// is shared by all tenants and never mutated by tenant edits.
type MessageTemplate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"type:varchar(40);uniqueIndex;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageOverride is a tenant-specific replacement for a template. One
// row per tenant and type, updated in place on subsequent saves.
type MessageOverride struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"not null;uniqueIndex:idx_message_overrides_tenant_type"`
	Type      string    `json:"type" gorm:"type:varchar(40);not null;uniqueIndex:idx_message_overrides_tenant_type"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
