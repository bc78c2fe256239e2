package repository

import (
	"context"

	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras a proveedor.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error)
}
