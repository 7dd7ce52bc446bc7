package repository

import (
	"strings"
	"time"

	"go-estoque-api/internal/model"

	"gorm.io/gorm"
)

// DailyFlow aggregates ledger magnitudes per day for the movement chart.
type DailyFlow struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type MovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindAll(movType, search string) ([]model.StockMovement, error)
	GetDailyFlow(startDate, endDate time.Time) ([]DailyFlow, error)
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

// Create receives *gorm.DB (tx) so the ledger insert joins the caller's
// transaction. The ledger is append-only: there is no Update or Delete.
func (r *movementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *movementRepo) FindAll(movType, search string) ([]model.StockMovement, error) {
	var movements []model.StockMovement

	q := r.db.Order("timestamp DESC")
	if movType != "" {
		q = q.Where("type = ?", movType)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(product_code) LIKE ? OR LOWER(product_description) LIKE ?", like, like)
	}

	err := q.Find(&movements).Error
	return movements, err
}

func (r *movementRepo) GetDailyFlow(startDate, endDate time.Time) ([]DailyFlow, error) {
	var results []DailyFlow

	// Aggregate ledger magnitudes per day: initial and add count as inbound,
	// remove as outbound.
	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(timestamp) as date,
			COALESCE(SUM(CASE WHEN type IN ('initial', 'add') THEN quantity_change ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'remove' THEN quantity_change ELSE 0 END), 0) as outbound
		`).
		Where("timestamp BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(timestamp)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyFlow
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
