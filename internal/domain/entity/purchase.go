package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registra una compra a proveedor (reabastecimiento de stock).
type Purchase struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Total devuelve el costo total de la compra (cantidad × precio unitario).
func (p Purchase) Total() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
