package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go-estoque-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetProducts lists products, optionally filtered.
// Query params: search (code/description), status (low | inactive)
func (h *ReportHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Query("search"), c.Query("status"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GetProductStats returns the overview counts for the stock screen cards.
func (h *ReportHandler) GetProductStats(c *fiber.Ctx) error {
	stats, err := h.service.GetProductStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch product stats"})
	}
	return c.JSON(stats)
}

// GetMovements lists the operational ledger, newest first.
// Query params: type (initial | add | remove), search (code/description)
func (h *ReportHandler) GetMovements(c *fiber.Ctx) error {
	movements, err := h.service.ListMovements(c.Query("type"), c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movements)
}

// GetHistory lists the audit trail plus per-kind summary counts.
// Query params: tipo (entrada | venda | ajuste), search (product code)
func (h *ReportHandler) GetHistory(c *fiber.Ctx) error {
	entries, err := h.service.ListHistory(c.Query("tipo"), c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	summary, err := h.service.GetHistorySummary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{
		"summary": summary,
		"data":    entries,
	})
}

// ExportHistory streams the audit trail as a CSV download, same filters as
// GetHistory. Column headers match the original export.
func (h *ReportHandler) ExportHistory(c *fiber.Ctx) error {
	entries, err := h.service.ListHistory(c.Query("tipo"), c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Data", "Código", "Tipo", "Quantidade", "Observação"})
	for _, e := range entries {
		obs := ""
		if e.Observation != nil {
			obs = *e.Observation
		}
		w.Write([]string{
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.ProductCode,
			string(e.Kind),
			strconv.Itoa(e.QuantityAdjusted),
			obs,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build CSV"})
	}

	filename := fmt.Sprintf("historico_vendas_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// GetDailyFlow returns per-day inbound/outbound ledger magnitudes for charts.
// Query params: days (default 7)
func (h *ReportHandler) GetDailyFlow(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetDailyFlow(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
