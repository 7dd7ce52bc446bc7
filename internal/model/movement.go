package model

import (
	"time"

	"github.com/google/uuid"
)

// MovementType is the operational ledger vocabulary. It is distinct from
// MovementKind on purpose: the ledger speaks initial/add/remove, the audit
// trail speaks entrada/venda/ajuste (see Classify for the mapping).
type MovementType string

const (
	MovementInitial MovementType = "initial"
	MovementAdd     MovementType = "add"
	MovementRemove  MovementType = "remove"
)

// StockMovement is one immutable row of the operational ledger. Rows are
// append-only: never updated, never deleted. Product code and description are
// denormalized at write time so the ledger stays readable if the product
// changes later.
type StockMovement struct {
	BaseModel
	ProductID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductCode        string       `gorm:"type:varchar(50);not null" json:"product_code"`
	ProductDescription string       `gorm:"type:varchar(255)" json:"product_description"`
	Type               MovementType `gorm:"type:varchar(10);not null" json:"type"`
	QuantityChange     int          `gorm:"not null" json:"quantity_change"`
	NewQuantity        int          `gorm:"not null" json:"new_quantity"`
	Timestamp          time.Time    `gorm:"not null;index" json:"timestamp"`
	UserEmail          string       `gorm:"type:varchar(255);not null" json:"user_email"`
}

// Classify maps a requested movement onto the ledger vocabulary. current is
// the stock before the movement; requested is a delta for entrada/venda and
// the absolute target for ajuste. The returned magnitude is always >= 0; the
// caller is responsible for rejecting a negative newQuantity (only venda can
// produce one).
func Classify(kind MovementKind, current, requested int) (movType MovementType, magnitude, newQuantity int) {
	switch kind {
	case KindEntrada:
		return MovementAdd, requested, current + requested
	case KindVenda:
		return MovementRemove, requested, current - requested
	case KindAjuste:
		// Absolute correction: direction of change decides the ledger side.
		// A no-op adjustment still records a remove with magnitude 0.
		if requested > current {
			return MovementAdd, requested - current, requested
		}
		return MovementRemove, current - requested, requested
	}
	return "", 0, current
}
