// Package stock mantiene el inventario consistente con ventas y compras.
// Las operaciones son leer-calcular-escribir sin bloqueo: dos sesiones
// descontando el mismo producto pueden perder una actualización (última
// escritura gana). Limitación aceptada en este alcance, no un bug a tapar.
package stock

import (
	"context"
	"fmt"

	"github.com/dcastano/puntoventa-api/internal/domain"
	"github.com/dcastano/puntoventa-api/internal/domain/repository"
)

// Adjuster aplica incrementos y decrementos de stock sobre el catálogo.
type Adjuster struct {
	products repository.ProductRepository
}

// NewAdjuster construye el ajustador.
func NewAdjuster(products repository.ProductRepository) *Adjuster {
	return &Adjuster{products: products}
}

// Item par producto/cantidad para operaciones por lote.
type Item struct {
	ProductID string
	Quantity  int
}

// BatchError reporta un lote parcialmente aplicado: qué productos ya
// fueron descontados y en cuál falló. No hay rollback entre ítems.
type BatchError struct {
	Applied  []string // ids ya descontados antes del fallo
	FailedID string
	Err      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("descuento de stock falló en producto %s (aplicados: %d): %v",
		e.FailedID, len(e.Applied), e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Decrement descuenta cantidad del stock con piso en cero: el stock nunca
// queda negativo. Devuelve el stock resultante.
func (a *Adjuster) Decrement(ctx context.Context, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	product, err := a.products.GetByID(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("leer producto: %w", err)
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	newStock := product.Stock - quantity
	if newStock < 0 {
		newStock = 0
	}
	if err := a.products.UpdateStock(ctx, productID, newStock); err != nil {
		return 0, fmt.Errorf("escribir stock: %w", err)
	}
	return newStock, nil
}

// Increment suma cantidad al stock (compras/reabastecimiento). Sin tope.
func (a *Adjuster) Increment(ctx context.Context, productID string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	product, err := a.products.GetByID(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("leer producto: %w", err)
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	newStock := product.Stock + quantity
	if err := a.products.UpdateStock(ctx, productID, newStock); err != nil {
		return 0, fmt.Errorf("escribir stock: %w", err)
	}
	return newStock, nil
}

// DecrementMany descuenta cada ítem del lote en orden. Antes de escribir
// verifica que todos los productos existan y tengan stock disponible, para
// reducir (no eliminar) la ventana de aplicación parcial: si una escritura
// intermedia falla, los ítems anteriores ya quedaron descontados y el
// BatchError dice cuáles.
func (a *Adjuster) DecrementMany(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		product, err := a.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return fmt.Errorf("leer producto %s: %w", it.ProductID, err)
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		if product.Stock == 0 {
			return fmt.Errorf("producto %q agotado: %w", product.Name, domain.ErrInsufficientStock)
		}
	}

	applied := make([]string, 0, len(items))
	for _, it := range items {
		if _, err := a.Decrement(ctx, it.ProductID, it.Quantity); err != nil {
			return &BatchError{Applied: applied, FailedID: it.ProductID, Err: err}
		}
		applied = append(applied, it.ProductID)
	}
	return nil
}
