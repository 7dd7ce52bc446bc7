package service

import (
	"testing"
	"time"

	"go-estoque-api/internal/model"
	"go-estoque-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReportService(t *testing.T) (ReportService, StockService, *gorm.DB) {
	t.Helper()
	svc, db := newTestStockService(t)
	report := NewReportService(
		repository.NewProductRepo(db),
		repository.NewMovementRepo(db),
		repository.NewHistoryRepo(db),
	)
	return report, svc, db
}

func seedProduct(t *testing.T, svc StockService, code string, quantity, threshold int) {
	t.Helper()
	_, err := svc.CreateProduct(&CreateProductRequest{
		Code:      code,
		Quantity:  quantity,
		Threshold: threshold,
	}, testActor())
	require.NoError(t, err)
}

func TestListProductsLowStockFilter(t *testing.T) {
	report, svc, _ := newTestReportService(t)
	seedProduct(t, svc, "LOW", 2, 5)
	seedProduct(t, svc, "AT-THRESHOLD", 5, 5)
	seedProduct(t, svc, "OK", 50, 5)

	products, err := report.ListProducts("", "low")
	require.NoError(t, err)
	require.Len(t, products, 2)

	codes := []string{products[0].Code, products[1].Code}
	assert.Contains(t, codes, "LOW")
	assert.Contains(t, codes, "AT-THRESHOLD")
}

func TestListProductsInactiveFilter(t *testing.T) {
	report, svc, db := newTestReportService(t)
	seedProduct(t, svc, "FRESH", 10, 2)
	seedProduct(t, svc, "STALE", 10, 2)

	// Backdate the stale product past the inactivity window.
	old := time.Now().Add(-repository.InactivityWindow - 24*time.Hour)
	require.NoError(t, db.Model(&model.Product{}).Where("code = ?", "STALE").Update("last_activity", old).Error)

	products, err := report.ListProducts("", "inactive")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "STALE", products[0].Code)
}

func TestListProductsSearch(t *testing.T) {
	report, svc, _ := newTestReportService(t)
	_, err := svc.CreateProduct(&CreateProductRequest{Code: "FIO-01", Description: "Fio de algodão azul", Quantity: 1}, testActor())
	require.NoError(t, err)
	_, err = svc.CreateProduct(&CreateProductRequest{Code: "LA-02", Description: "Lã merino", Quantity: 1}, testActor())
	require.NoError(t, err)

	byCode, err := report.ListProducts("fio", "")
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "FIO-01", byCode[0].Code)

	byDescription, err := report.ListProducts("merino", "")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "LA-02", byDescription[0].Code)
}

func TestGetProductStats(t *testing.T) {
	report, svc, db := newTestReportService(t)
	seedProduct(t, svc, "LOW", 1, 5)
	seedProduct(t, svc, "OK", 50, 5)
	seedProduct(t, svc, "STALE", 50, 5)

	old := time.Now().Add(-repository.InactivityWindow - 24*time.Hour)
	require.NoError(t, db.Model(&model.Product{}).Where("code = ?", "STALE").Update("last_activity", old).Error)

	stats, err := report.GetProductStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.LowStock)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, int64(1), stats.Healthy)
}

func TestListMovementsFilterByType(t *testing.T) {
	report, svc, _ := newTestReportService(t)
	seedProduct(t, svc, "P1", 10, 2)

	_, _, err := svc.AdjustStock(&AdjustStockRequest{ProductCode: "P1", Kind: model.KindVenda, Quantity: 3}, testActor())
	require.NoError(t, err)
	_, _, err = svc.AdjustStock(&AdjustStockRequest{ProductCode: "P1", Kind: model.KindEntrada, Quantity: 5}, testActor())
	require.NoError(t, err)

	removes, err := report.ListMovements("remove", "")
	require.NoError(t, err)
	require.Len(t, removes, 1)
	assert.Equal(t, model.MovementRemove, removes[0].Type)

	all, err := report.ListMovements("", "")
	require.NoError(t, err)
	assert.Len(t, all, 3) // initial + remove + add
}

func TestListHistoryAndSummary(t *testing.T) {
	report, svc, _ := newTestReportService(t)
	seedProduct(t, svc, "P1", 10, 2)

	_, _, err := svc.AdjustStock(&AdjustStockRequest{ProductCode: "P1", Kind: model.KindVenda, Quantity: 3}, testActor())
	require.NoError(t, err)
	_, _, err = svc.AdjustStock(&AdjustStockRequest{ProductCode: "P1", Kind: model.KindAjuste, Quantity: 15}, testActor())
	require.NoError(t, err)

	vendas, err := report.ListHistory("venda", "")
	require.NoError(t, err)
	require.Len(t, vendas, 1)
	assert.Equal(t, model.KindVenda, vendas[0].Kind)

	summary, err := report.GetHistorySummary()
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(1), summary.Entradas) // product registration
	assert.Equal(t, int64(1), summary.Vendas)
	assert.Equal(t, int64(1), summary.Ajustes)
}

func TestGetDailyFlow(t *testing.T) {
	report, svc, _ := newTestReportService(t)
	seedProduct(t, svc, "P1", 10, 2)

	_, _, err := svc.AdjustStock(&AdjustStockRequest{ProductCode: "P1", Kind: model.KindEntrada, Quantity: 5}, testActor())
	require.NoError(t, err)
	_, _, err = svc.AdjustStock(&AdjustStockRequest{ProductCode: "P1", Kind: model.KindVenda, Quantity: 4}, testActor())
	require.NoError(t, err)

	flow, err := report.GetDailyFlow(7)
	require.NoError(t, err)
	require.Len(t, flow, 1, "all movements happened today")
	assert.Equal(t, 15, flow[0].Inbound) // 10 initial + 5 entrada
	assert.Equal(t, 4, flow[0].Outbound)
}
