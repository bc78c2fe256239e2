package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago soportados por la caja.
const (
	PaymentCash   = "efectivo"
	PaymentQR     = "qr"
	PaymentCredit = "credito" // fiado contra la deuda del cliente
)

// Sale es el comprobante transitorio de una venta confirmada. No se
// persiste: se devuelve a la caja para imprimir/mostrar el recibo.
type Sale struct {
	Items          []SaleItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Shipping       decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  string
	ReceivedAmount decimal.Decimal // efectivo recibido (igual al total en qr/credito)
	Change         decimal.Decimal
	ClientID       string // solo en ventas a crédito
	ClientName     string
	PreviousDebt   decimal.Decimal // deuda antes/después, solo crédito
	NewDebt        decimal.Decimal
	Date           time.Time
}

// SaleItem es la línea congelada del carrito al momento de confirmar.
type SaleItem struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}
