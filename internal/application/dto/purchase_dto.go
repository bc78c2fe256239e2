package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPurchaseRequest compra a proveedor: registra la compra y
// reabastece el stock del producto.
type RegisterPurchaseRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseResponse compra registrada.
type PurchaseResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Stock     int             `json:"stock"` // stock resultante del producto
	CreatedAt time.Time       `json:"created_at"`
}

// PurchaseListResponse listado paginado de compras.
type PurchaseListResponse struct {
	Items  []*PurchaseResponse `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}
