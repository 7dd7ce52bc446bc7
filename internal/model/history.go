package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementKind is the business-intent classification recorded in the audit
// trail (historico_vendas.tipo).
type MovementKind string

const (
	KindEntrada MovementKind = "entrada"
	KindVenda   MovementKind = "venda"
	KindAjuste  MovementKind = "ajuste"
)

// Valid reports whether the kind is one of the three accepted values.
func (k MovementKind) Valid() bool {
	switch k {
	case KindEntrada, KindVenda, KindAjuste:
		return true
	}
	return false
}

// HistoryEntry is one immutable row of the sales/adjustment audit trail.
// Column names keep the vocabulary of the original historico_vendas table so
// existing exports and reports keep working; only the Go identifiers are
// translated.
type HistoryEntry struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	ProductCode      string       `gorm:"column:codigo_produto;type:varchar(50);not null;index" json:"codigo_produto"`
	ProductID        *uuid.UUID   `gorm:"column:produto_id;type:uuid;index" json:"produto_id"`
	QuantityAdjusted int          `gorm:"column:quantidade_ajustada;not null" json:"quantidade_ajustada"`
	Kind             MovementKind `gorm:"column:tipo;type:varchar(10);not null" json:"tipo"`
	Observation      *string      `gorm:"column:observacao;type:text" json:"observacao,omitempty"`
	UserID           uuid.UUID    `gorm:"column:usuario_id;type:uuid;not null" json:"usuario_id"`
	CreatedAt        time.Time    `gorm:"column:created_at;index" json:"created_at"`
}

func (HistoryEntry) TableName() string {
	return "historico_vendas"
}

func (h *HistoryEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}
