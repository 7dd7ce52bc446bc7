package repository

import (
	"errors"
	"strings"
	"time"

	"go-estoque-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrConcurrentUpdate is returned when the guarded quantity update matches no
// row, i.e. another request changed the product after the caller read it.
var ErrConcurrentUpdate = errors.New("product was modified by another request")

// InactivityWindow is how long a product may go without movement before the
// stock views flag it as "sem vendas".
const InactivityWindow = 30 * 24 * time.Hour

// ProductStats backs the overview cards on the stock screen.
type ProductStats struct {
	Total    int64 `json:"total"`
	LowStock int64 `json:"low_stock"`
	Inactive int64 `json:"inactive"`
	Healthy  int64 `json:"healthy"`
}

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(search, status string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, oldQuantity, newQuantity int, lastActivity time.Time) error
	GetStats() (*ProductStats, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create receives *gorm.DB (tx) so the insert joins the caller's transaction
func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll(search, status string) ([]model.Product, error) {
	var products []model.Product

	q := r.db.Order("code ASC")
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(code) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	switch status {
	case "low":
		q = q.Where("quantity <= threshold")
	case "inactive":
		q = q.Where("last_activity < ?", time.Now().Add(-InactivityWindow))
	}

	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	return &product, err
}

// UpdateQuantity writes the new quantity and activity timestamp inside the
// caller's transaction. The WHERE clause compares against the quantity the
// caller read: if another request changed it in between, no row matches and
// ErrConcurrentUpdate aborts the surrounding transaction.
func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, oldQuantity, newQuantity int, lastActivity time.Time) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity = ?", id, oldQuantity).
		Updates(map[string]interface{}{
			"quantity":      newQuantity,
			"last_activity": lastActivity,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (r *productRepo) GetStats() (*ProductStats, error) {
	var stats ProductStats
	cutoff := time.Now().Add(-InactivityWindow)

	if err := r.db.Model(&model.Product{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	r.db.Model(&model.Product{}).Where("quantity <= threshold").Count(&stats.LowStock)
	r.db.Model(&model.Product{}).Where("last_activity < ?", cutoff).Count(&stats.Inactive)
	r.db.Model(&model.Product{}).Where("quantity > threshold AND last_activity >= ?", cutoff).Count(&stats.Healthy)

	return &stats, nil
}
