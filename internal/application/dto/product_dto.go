package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

// UpdateProductRequest actualización parcial. El stock no se toca aquí:
// cambia solo vía ventas, compras o ajustes de inventario.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
	Image    *string          `json:"image"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category,omitempty"`
	Image     string          `json:"image,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items  []*ProductResponse `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

// AdjustStockRequest ajuste manual de inventario (entrada o salida).
type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

// StockResponse stock resultante tras un ajuste.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}
