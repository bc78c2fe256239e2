package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/puntoventa-api/internal/application/checkout"
	"github.com/dcastano/puntoventa-api/internal/application/dto"
	"github.com/dcastano/puntoventa-api/internal/domain"
)

// CheckoutHandler maneja la sesión de caja: carrito, descuento, domicilio
// y el paso a pago (borrador).
type CheckoutHandler struct {
	svc *checkout.Service
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// OpenSession godoc
// @Summary      Abrir sesión de caja
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.CartResponse
// @Router       /api/checkout/sessions [post]
func (h *CheckoutHandler) OpenSession(c *fiber.Ctx) error {
	id := h.svc.OpenSession()
	view, err := h.svc.GetCart(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toCartResponse(view))
}

// CloseSession godoc
// @Summary      Cerrar sesión de caja
// @Tags         checkout
// @Security     Bearer
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Success      204  "Sin contenido"
// @Router       /api/checkout/sessions/{sessionID} [delete]
func (h *CheckoutHandler) CloseSession(c *fiber.Ctx) error {
	h.svc.CloseSession(c.Params("sessionID"))
	return c.SendStatus(fiber.StatusNoContent)
}

// GetCart godoc
// @Summary      Ver carrito con desglose
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart [get]
func (h *CheckoutHandler) GetCart(c *fiber.Ctx) error {
	view, err := h.svc.GetCart(c.Params("sessionID"))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// AddItem godoc
// @Summary      Agregar una unidad de un producto al carrito
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Param        body       body  dto.AddItemRequest  true  "Producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart/items [post]
func (h *CheckoutHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil || in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "product_id es requerido"})
	}
	view, err := h.svc.AddItem(c.Context(), c.Params("sessionID"), in.ProductID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// SetQuantity godoc
// @Summary      Fijar la cantidad de una línea (≤ 0 la elimina)
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Param        productID  path  string  true  "ID del producto"
// @Param        body       body  dto.SetQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart/items/{productID} [put]
func (h *CheckoutHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.svc.SetQuantity(c.Params("sessionID"), c.Params("productID"), in.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// RemoveItem godoc
// @Summary      Eliminar una línea del carrito
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Param        productID  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart/items/{productID} [delete]
func (h *CheckoutHandler) RemoveItem(c *fiber.Ctx) error {
	view, err := h.svc.RemoveItem(c.Params("sessionID"), c.Params("productID"))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// ClearCart godoc
// @Summary      Vaciar el carrito
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart [delete]
func (h *CheckoutHandler) ClearCart(c *fiber.Ctx) error {
	view, err := h.svc.ClearCart(c.Params("sessionID"))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// SetDiscount godoc
// @Summary      Aplicar descuento por monto o porcentaje
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Param        body       body  dto.SetDiscountRequest  true  "Valor y modo (amount | percentage)"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart/discount [put]
func (h *CheckoutHandler) SetDiscount(c *fiber.Ctx) error {
	var in dto.SetDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.svc.SetDiscount(c.Params("sessionID"), in.Value, in.Mode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mode debe ser amount o percentage"})
		}
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// SetShipping godoc
// @Summary      Fijar el valor del domicilio
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Param        body       body  dto.SetShippingRequest  true  "Valor del domicilio"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/cart/shipping [put]
func (h *CheckoutHandler) SetShipping(c *fiber.Ctx) error {
	var in dto.SetShippingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.svc.SetShipping(c.Params("sessionID"), in.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount no puede ser negativo"})
		}
		return cartError(c, err)
	}
	return c.JSON(toCartResponse(view))
}

// Checkout godoc
// @Summary      Congelar el carrito en un borrador de venta
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        sessionID  path  string  true  "ID de la sesión"
// @Success      201  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/sessions/{sessionID}/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	draft, err := h.svc.Checkout(c.Context(), c.Params("sessionID"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		}
		return cartError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{DraftID: draft.ID, Total: draft.Summary.Total})
}

func cartError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión de caja no encontrada"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toCartResponse(view *checkout.CartView) dto.CartResponse {
	lines := make([]dto.CartLineResponse, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, dto.CartLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	return dto.CartResponse{
		SessionID: view.SessionID,
		Lines:     lines,
		Summary: dto.SummaryResponse{
			Subtotal: view.Summary.Subtotal,
			Discount: view.Summary.Discount,
			Shipping: view.Summary.Shipping,
			Total:    view.Summary.Total,
		},
	}
}
