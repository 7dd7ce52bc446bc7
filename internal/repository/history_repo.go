package repository

import (
	"strings"

	"go-estoque-api/internal/model"

	"gorm.io/gorm"
)

// HistorySummary counts audit entries per business kind.
type HistorySummary struct {
	Total    int64 `json:"total"`
	Entradas int64 `json:"entradas"`
	Vendas   int64 `json:"vendas"`
	Ajustes  int64 `json:"ajustes"`
}

type HistoryRepository interface {
	Create(tx *gorm.DB, entry *model.HistoryEntry) error
	FindAll(kind, search string) ([]model.HistoryEntry, error)
	GetSummary() (*HistorySummary, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

// Create receives *gorm.DB (tx) so the audit insert joins the caller's
// transaction. Entries are append-only.
func (r *historyRepo) Create(tx *gorm.DB, entry *model.HistoryEntry) error {
	return tx.Create(entry).Error
}

func (r *historyRepo) FindAll(kind, search string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry

	q := r.db.Order("created_at DESC")
	if kind != "" {
		q = q.Where("tipo = ?", kind)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(codigo_produto) LIKE ?", like)
	}

	err := q.Find(&entries).Error
	return entries, err
}

func (r *historyRepo) GetSummary() (*HistorySummary, error) {
	var summary HistorySummary

	if err := r.db.Model(&model.HistoryEntry{}).Count(&summary.Total).Error; err != nil {
		return nil, err
	}
	r.db.Model(&model.HistoryEntry{}).Where("tipo = ?", model.KindEntrada).Count(&summary.Entradas)
	r.db.Model(&model.HistoryEntry{}).Where("tipo = ?", model.KindVenda).Count(&summary.Vendas)
	r.db.Model(&model.HistoryEntry{}).Where("tipo = ?", model.KindAjuste).Count(&summary.Ajustes)

	return &summary, nil
}
