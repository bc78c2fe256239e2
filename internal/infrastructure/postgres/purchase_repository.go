package postgres

import (
	"context"
	"fmt"

	"github.com/dcastano/puntoventa-api/internal/domain/entity"
	"github.com/dcastano/puntoventa-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra a proveedor.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.ProductID, purchase.Quantity, purchase.UnitPrice, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// List lista compras de la más reciente a la más antigua, con paginación.
func (r *PurchaseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, created_at
		FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Quantity, &p.UnitPrice, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
