package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de venta.
// Stock se decrementa en cada venta y se incrementa en cada compra a proveedor.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal // precio de venta en COP (pesos enteros)
	Stock     int
	Category  string // opcional: panaderia, bebidas, etc.
	Image     string // referencia a la imagen (ruta o URL)
	CreatedAt time.Time
	UpdatedAt time.Time
}
