package service

import (
	"time"

	"go-estoque-api/internal/model"
	"go-estoque-api/internal/repository"
)

// ReportService serves the derived read views: product lists and status
// counts, the movement ledger, the audit trail and the daily flow chart.
// Everything here is a projection over the same tables the stock service
// writes; no extra invariants.
type ReportService interface {
	ListProducts(search, status string) ([]model.Product, error)
	GetProductStats() (*repository.ProductStats, error)
	ListMovements(movType, search string) ([]model.StockMovement, error)
	ListHistory(kind, search string) ([]model.HistoryEntry, error)
	GetHistorySummary() (*repository.HistorySummary, error)
	GetDailyFlow(days int) ([]repository.DailyFlow, error)
}

type reportService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	historyRepo  repository.HistoryRepository
}

func NewReportService(pRepo repository.ProductRepository, mRepo repository.MovementRepository, hRepo repository.HistoryRepository) ReportService {
	return &reportService{
		productRepo:  pRepo,
		movementRepo: mRepo,
		historyRepo:  hRepo,
	}
}

func (s *reportService) ListProducts(search, status string) ([]model.Product, error) {
	return s.productRepo.FindAll(search, status)
}

func (s *reportService) GetProductStats() (*repository.ProductStats, error) {
	return s.productRepo.GetStats()
}

func (s *reportService) ListMovements(movType, search string) ([]model.StockMovement, error) {
	return s.movementRepo.FindAll(movType, search)
}

func (s *reportService) ListHistory(kind, search string) ([]model.HistoryEntry, error) {
	return s.historyRepo.FindAll(kind, search)
}

func (s *reportService) GetHistorySummary() (*repository.HistorySummary, error) {
	return s.historyRepo.GetSummary()
}

func (s *reportService) GetDailyFlow(days int) ([]repository.DailyFlow, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.movementRepo.GetDailyFlow(startDate, endDate)
}
