package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/puntoventa-api/internal/application/dto"
	"github.com/dcastano/puntoventa-api/internal/application/stock"
	"github.com/dcastano/puntoventa-api/internal/domain"
)

// StockHandler expone los ajustes manuales de inventario.
type StockHandler struct {
	adjuster *stock.Adjuster
}

// NewStockHandler construye el handler.
func NewStockHandler(adjuster *stock.Adjuster) *StockHandler {
	return &StockHandler{adjuster: adjuster}
}

// Increment godoc
// @Summary      Entrada manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Cantidad a ingresar"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/increment [post]
func (h *StockHandler) Increment(c *fiber.Ctx) error {
	return h.adjust(c, h.adjuster.Increment)
}

// Decrement godoc
// @Summary      Salida manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Cantidad a retirar"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/decrement [post]
func (h *StockHandler) Decrement(c *fiber.Ctx) error {
	return h.adjust(c, h.adjuster.Decrement)
}

func (h *StockHandler) adjust(c *fiber.Ctx, op func(ctx context.Context, productID string, quantity int) (int, error)) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := op(c.Context(), id, in.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser mayor que cero"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockResponse{ProductID: id, Stock: newStock})
}
