package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		kind       MovementKind
		current    int
		requested  int
		wantType   MovementType
		wantChange int
		wantNewQty int
	}{
		{"entrada adds the delta", KindEntrada, 10, 5, MovementAdd, 5, 15},
		{"entrada on empty stock", KindEntrada, 0, 3, MovementAdd, 3, 3},
		{"venda subtracts the delta", KindVenda, 10, 4, MovementRemove, 4, 6},
		{"venda can go below zero for the caller to reject", KindVenda, 10, 12, MovementRemove, 12, -2},
		{"ajuste above current is an add", KindAjuste, 10, 20, MovementAdd, 10, 20},
		{"ajuste below current is a remove", KindAjuste, 10, 3, MovementRemove, 7, 3},
		{"ajuste to current records magnitude zero", KindAjuste, 10, 10, MovementRemove, 0, 10},
		{"ajuste to zero empties the stock", KindAjuste, 7, 0, MovementRemove, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movType, change, newQty := Classify(tt.kind, tt.current, tt.requested)
			assert.Equal(t, tt.wantType, movType)
			assert.Equal(t, tt.wantChange, change)
			assert.Equal(t, tt.wantNewQty, newQty)
			assert.GreaterOrEqual(t, change, 0, "magnitude must never be negative")
		})
	}
}

func TestMovementKindValid(t *testing.T) {
	assert.True(t, KindEntrada.Valid())
	assert.True(t, KindVenda.Valid())
	assert.True(t, KindAjuste.Valid())
	assert.False(t, MovementKind("restock").Valid())
	assert.False(t, MovementKind("").Valid())
}
