package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/puntoventa-api/internal/application/checkout"
	"github.com/dcastano/puntoventa-api/internal/application/dto"
	"github.com/dcastano/puntoventa-api/internal/domain"
	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante en PDF de una venta confirmada.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error)
}

// PaymentHandler maneja la pantalla de pago: lectura del borrador y
// confirmación por efectivo, QR o crédito. Con ?receipt=pdf la respuesta
// es el comprobante en PDF en lugar del JSON.
type PaymentHandler struct {
	svc      *checkout.Service
	receipts ReceiptGenerator
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(svc *checkout.Service, receipts ReceiptGenerator) *PaymentHandler {
	return &PaymentHandler{svc: svc, receipts: receipts}
}

// GetDraft godoc
// @Summary      Leer un borrador de venta
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        draftID  path  string  true  "ID del borrador"
// @Success      200  {object}  checkout.SaleDraft
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/drafts/{draftID} [get]
func (h *PaymentHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.svc.GetDraft(c.Context(), c.Params("draftID"))
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(draft)
}

// CompleteCash godoc
// @Summary      Confirmar pago en efectivo
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        draftID  path   string  true   "ID del borrador"
// @Param        receipt  query  string  false  "pdf para recibir el comprobante en PDF"
// @Param        body     body   dto.CashPaymentRequest  true  "Monto recibido"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payments/drafts/{draftID}/cash [post]
func (h *PaymentHandler) CompleteCash(c *fiber.Ctx) error {
	var in dto.CashPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.svc.CompleteCash(c.Context(), c.Params("draftID"), in.ReceivedAmount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_AMOUNT", Message: "el monto recibido no cubre el total"})
		}
		return paymentError(c, err)
	}
	return h.respond(c, sale)
}

// CompleteQR godoc
// @Summary      Confirmar pago por QR
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        draftID  path   string  true   "ID del borrador"
// @Param        receipt  query  string  false  "pdf para recibir el comprobante en PDF"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payments/drafts/{draftID}/qr [post]
func (h *PaymentHandler) CompleteQR(c *fiber.Ctx) error {
	sale, err := h.svc.CompleteQR(c.Context(), c.Params("draftID"))
	if err != nil {
		return paymentError(c, err)
	}
	return h.respond(c, sale)
}

// CompleteCredit godoc
// @Summary      Confirmar venta fiada contra un cliente
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        draftID  path   string  true   "ID del borrador"
// @Param        receipt  query  string  false  "pdf para recibir el comprobante en PDF"
// @Param        body     body   dto.CreditPaymentRequest  true  "Cliente que fía"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payments/drafts/{draftID}/credit [post]
func (h *PaymentHandler) CompleteCredit(c *fiber.Ctx) error {
	var in dto.CreditPaymentRequest
	if err := c.BodyParser(&in); err != nil || in.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "client_id es requerido"})
	}
	sale, err := h.svc.CompleteCredit(c.Context(), c.Params("draftID"), in.ClientID)
	if err != nil {
		return paymentError(c, err)
	}
	return h.respond(c, sale)
}

// respond entrega el comprobante como JSON o, con ?receipt=pdf, como PDF.
func (h *PaymentHandler) respond(c *fiber.Ctx, sale *entity.Sale) error {
	if c.Query("receipt") == "pdf" {
		pdfBytes, err := h.receipts.GenerateReceiptPDF(c.Context(), sale)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante.pdf"`)
		return c.Send(pdfBytes)
	}
	return c.JSON(toSaleResponse(sale))
}

func paymentError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDraftNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DRAFT_NOT_FOUND", Message: "el borrador no existe o ya expiró"})
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OUT_OF_STOCK", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "petición inválida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toSaleResponse(sale *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	out := dto.SaleResponse{
		Items:          items,
		Subtotal:       sale.Subtotal,
		Discount:       sale.Discount,
		Shipping:       sale.Shipping,
		Total:          sale.Total,
		PaymentMethod:  sale.PaymentMethod,
		ReceivedAmount: sale.ReceivedAmount,
		Change:         sale.Change,
		Date:           sale.Date,
	}
	if sale.PaymentMethod == entity.PaymentCredit {
		prev, next := sale.PreviousDebt, sale.NewDebt
		out.ClientID = sale.ClientID
		out.ClientName = sale.ClientName
		out.PreviousDebt = &prev
		out.NewDebt = &next
	}
	return out
}
