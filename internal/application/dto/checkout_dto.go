package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest agrega una unidad de un producto al carrito de la sesión.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// SetQuantityRequest fija la cantidad exacta de una línea (≤ 0 la elimina).
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetDiscountRequest aplica un descuento por monto o por porcentaje.
type SetDiscountRequest struct {
	Value decimal.Decimal `json:"value"`
	Mode  string          `json:"mode"` // amount | percentage
}

// SetShippingRequest fija el valor del domicilio.
type SetShippingRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CartLineResponse línea del carrito en respuestas.
type CartLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// SummaryResponse desglose de totales de la venta en curso.
type SummaryResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// CartResponse carrito completo con su desglose.
type CartResponse struct {
	SessionID string             `json:"session_id"`
	Lines     []CartLineResponse `json:"lines"`
	Summary   SummaryResponse    `json:"summary"`
}

// CheckoutResponse resultado de pasar a pago: el id del borrador que la
// pantalla de pago debe leer (y consumir al confirmar).
type CheckoutResponse struct {
	DraftID string          `json:"draft_id"`
	Total   decimal.Decimal `json:"total"`
}

// CashPaymentRequest confirma un pago en efectivo.
type CashPaymentRequest struct {
	ReceivedAmount decimal.Decimal `json:"received_amount"`
}

// CreditPaymentRequest confirma una venta a crédito contra un cliente.
type CreditPaymentRequest struct {
	ClientID string `json:"client_id"`
}

// SaleItemResponse línea congelada del comprobante.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// SaleResponse comprobante de venta confirmada (no se persiste).
type SaleResponse struct {
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	Shipping       decimal.Decimal    `json:"shipping"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	ReceivedAmount decimal.Decimal    `json:"received_amount"`
	Change         decimal.Decimal    `json:"change"`
	ClientID       string             `json:"client_id,omitempty"`
	ClientName     string             `json:"client_name,omitempty"`
	PreviousDebt   *decimal.Decimal   `json:"previous_debt,omitempty"`
	NewDebt        *decimal.Decimal   `json:"new_debt,omitempty"`
	Date           time.Time          `json:"date"`
}
