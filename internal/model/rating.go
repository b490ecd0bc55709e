package model

import "time"

// Rating is a customer review left through the ordering channel. The
// back office only reads them.
type Rating struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TenantID     uint      `json:"tenant_id" gorm:"index;not null;comment:'Tenant this rating belongs to'"`
	CustomerName string    `json:"customer_name" gorm:"type:varchar(255)"`
	Stars        int       `json:"stars" gorm:"not null"`
	Comment      string    `json:"comment" gorm:"type:text"`
	RatedAt      time.Time `json:"rated_at" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
}
