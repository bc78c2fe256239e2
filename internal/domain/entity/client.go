package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente con cuenta corriente (fiado).
// TotalDebt es la deuda acumulada por ventas a crédito; solo la operación
// de venta a crédito la modifica y únicamente hacia arriba (no existe abono).
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string // opcional
	Address   string // opcional
	TotalDebt decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
