package service

import (
	"errors"
	"fmt"
	"time"

	"go-estoque-api/internal/model"
	"go-estoque-api/internal/repository"
	"go-estoque-api/internal/ws"
	"go-estoque-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrDuplicateCode       = errors.New("a product with this code already exists")
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock for this sale")
	ErrInvalidMovementKind = errors.New("invalid movement kind")
)

// initialObservation is the fixed audit note written when a product is
// registered. Kept in Portuguese to match the historico_vendas vocabulary.
const initialObservation = "Cadastro inicial do produto"

type CreateProductRequest struct {
	Code        string  `json:"code" validate:"required"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Threshold   int     `json:"threshold" validate:"gte=0"`
	EAN         *string `json:"ean,omitempty" validate:"omitempty,ean13"`
}

type AdjustStockRequest struct {
	ProductCode string             `json:"productCode" validate:"required"`
	Kind        model.MovementKind `json:"type" validate:"required"`
	Quantity    int                `json:"quantity" validate:"gte=0"`
	Observation *string            `json:"observation,omitempty"`
}

// MovementOutcome is the ledger-side view of a mutation returned to callers:
// the classification, the absolute magnitude and the resulting quantity.
type MovementOutcome struct {
	Type           model.MovementType `json:"type"`
	QuantityChange int                `json:"quantityChange"`
	NewQuantity    int                `json:"newQuantity"`
}

type StockService interface {
	CreateProduct(req *CreateProductRequest, actor model.Actor) (*model.Product, error)
	AdjustStock(req *AdjustStockRequest, actor model.Actor) (*model.Product, *MovementOutcome, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	historyRepo  repository.HistoryRepository
	db           *gorm.DB
	wsHub        *ws.Hub
	log          zerolog.Logger
}

func NewStockService(pRepo repository.ProductRepository, mRepo repository.MovementRepository, hRepo repository.HistoryRepository, db *gorm.DB, hub *ws.Hub, log zerolog.Logger) StockService {
	return &stockService{
		productRepo:  pRepo,
		movementRepo: mRepo,
		historyRepo:  hRepo,
		db:           db,
		wsHub:        hub,
		log:          log,
	}
}

// CreateProduct registers a product and seeds its ledger and audit trail: the
// product row, one "initial" ledger movement and one "entrada" history entry
// are written in a single transaction.
func (s *stockService) CreateProduct(req *CreateProductRequest, actor model.Actor) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	existing, _ := s.productRepo.FindByCode(req.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateCode
	}

	now := time.Now()
	product := &model.Product{
		Code:         req.Code,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Threshold:    req.Threshold,
		EAN:          req.EAN,
		LastActivity: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID:          product.ID,
			ProductCode:        product.Code,
			ProductDescription: product.Description,
			Type:               model.MovementInitial,
			QuantityChange:     req.Quantity,
			NewQuantity:        req.Quantity,
			Timestamp:          now,
			UserEmail:          actor.Email,
		}
		if err := s.movementRepo.Create(tx, movement); err != nil {
			return err
		}

		obs := initialObservation
		entry := &model.HistoryEntry{
			ProductCode:      product.Code,
			ProductID:        &product.ID,
			QuantityAdjusted: req.Quantity,
			Kind:             model.KindEntrada,
			Observation:      &obs,
			UserID:           actor.ID,
			CreatedAt:        now,
		}
		return s.historyRepo.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("code", product.Code).Int("quantity", product.Quantity).Msg("product created")

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":       product.ID,
			"code":     product.Code,
			"quantity": product.Quantity,
		},
		"user": map[string]interface{}{
			"id":    actor.ID,
			"email": actor.Email,
		},
		"message": fmt.Sprintf("%s registered product '%s'", actor.Email, product.Code),
	})

	return product, nil
}

// AdjustStock applies one movement against a product. entrada and venda are
// deltas; ajuste sets the absolute quantity. The product update, the ledger
// row and the history row all commit together or not at all.
func (s *stockService) AdjustStock(req *AdjustStockRequest, actor model.Actor) (*model.Product, *MovementOutcome, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if !req.Kind.Valid() {
		return nil, nil, ErrInvalidMovementKind
	}
	if req.Kind != model.KindAjuste && req.Quantity <= 0 {
		return nil, nil, fmt.Errorf("quantity must be greater than zero for %s movements", req.Kind)
	}

	var product model.Product
	var outcome MovementOutcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-read the current quantity inside the transaction; nothing is
		// cached across requests.
		if err := tx.First(&product, "code = ?", req.ProductCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		movType, magnitude, newQuantity := model.Classify(req.Kind, product.Quantity, req.Quantity)
		if newQuantity < 0 {
			return ErrInsufficientStock
		}

		now := time.Now()
		if err := s.productRepo.UpdateQuantity(tx, product.ID, product.Quantity, newQuantity, now); err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID:          product.ID,
			ProductCode:        product.Code,
			ProductDescription: product.Description,
			Type:               movType,
			QuantityChange:     magnitude,
			NewQuantity:        newQuantity,
			Timestamp:          now,
			UserEmail:          actor.Email,
		}
		if err := s.movementRepo.Create(tx, movement); err != nil {
			return err
		}

		entry := &model.HistoryEntry{
			ProductCode:      product.Code,
			ProductID:        &product.ID,
			QuantityAdjusted: magnitude,
			Kind:             req.Kind,
			Observation:      req.Observation,
			UserID:           actor.ID,
			CreatedAt:        now,
		}
		if err := s.historyRepo.Create(tx, entry); err != nil {
			return err
		}

		product.Quantity = newQuantity
		product.LastActivity = now
		outcome = MovementOutcome{
			Type:           movType,
			QuantityChange: magnitude,
			NewQuantity:    newQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().
		Str("code", product.Code).
		Str("kind", string(req.Kind)).
		Int("quantity_change", outcome.QuantityChange).
		Int("new_quantity", outcome.NewQuantity).
		Msg("stock adjusted")

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "stock_adjusted",
		"movement": map[string]interface{}{
			"product_id":      product.ID,
			"product_code":    product.Code,
			"type":            outcome.Type,
			"quantity_change": outcome.QuantityChange,
			"new_quantity":    outcome.NewQuantity,
		},
		"user": map[string]interface{}{
			"id":    actor.ID,
			"email": actor.Email,
		},
		"message": fmt.Sprintf("%s recorded %s of %d units for '%s'", actor.Email, req.Kind, outcome.QuantityChange, product.Code),
	})

	return &product, &outcome, nil
}
