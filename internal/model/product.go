package model

import "time"

// Product is the canonical stock record. Quantity is only ever written by the
// stock service; it must never go negative.
type Product struct {
	BaseModel
	Code         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Description  string    `gorm:"type:varchar(255)" json:"description"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	Threshold    int       `gorm:"not null;default:0" json:"threshold"`
	EAN          *string   `gorm:"type:varchar(13);uniqueIndex" json:"ean,omitempty"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
}

// IsLowStock reports whether the product sits at or below its alarm level.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.Threshold
}

// IsInactive reports whether the product has had no movement since the cutoff.
func (p *Product) IsInactive(cutoff time.Time) bool {
	return p.LastActivity.Before(cutoff)
}
