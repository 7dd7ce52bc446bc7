package handler

import (
	"errors"

	"go-estoque-api/internal/model"
	"go-estoque-api/internal/repository"
	"go-estoque-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// getActor rebuilds the caller identity from the locals set by RequireAuth.
func getActor(c *fiber.Ctx) (model.Actor, error) {
	idStr, _ := c.Locals("user_id").(string)
	email, _ := c.Locals("user_email").(string)

	id, err := uuid.Parse(idStr)
	if err != nil || email == "" {
		return model.Actor{}, errors.New("missing caller identity")
	}
	return model.Actor{ID: id, Email: email}, nil
}

// statusForError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is treated as a request validation problem.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateCode):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInsufficientStock):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidMovementKind):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrConcurrentUpdate):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func (h *StockHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor, err := getActor(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.service.CreateProduct(&req, actor)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"product": product})
}

func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor, err := getActor(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	product, movement, err := h.service.AdjustStock(&req, actor)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"product":  product,
		"movement": movement,
	})
}
