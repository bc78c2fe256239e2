// Package purchasing registra compras a proveedor y reabastece stock.
// La compra y el incremento de stock son dos escrituras separadas, sin
// transacción: puede quedar la compra registrada con el stock sin subir.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/puntoventa-api/internal/application/dto"
	"github.com/dcastano/puntoventa-api/internal/application/stock"
	"github.com/dcastano/puntoventa-api/internal/domain"
	"github.com/dcastano/puntoventa-api/internal/domain/entity"
	"github.com/dcastano/puntoventa-api/internal/domain/repository"
	"github.com/dcastano/puntoventa-api/pkg/logger"
)

// UseCase casos de uso de compras.
type UseCase struct {
	purchases repository.PurchaseRepository
	products  repository.ProductRepository
	adjuster  *stock.Adjuster
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	purchases repository.PurchaseRepository,
	products repository.ProductRepository,
	adjuster *stock.Adjuster,
	log *logger.Logger,
) *UseCase {
	return &UseCase{purchases: purchases, products: products, adjuster: adjuster, log: log}
}

// RegisterPurchase persiste la compra y luego incrementa el stock del
// producto. Si el incremento falla la compra ya quedó registrada; el error
// lo dice y se deja rastro en el log.
func (uc *UseCase) RegisterPurchase(ctx context.Context, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ProductID == "" || in.Quantity < 1 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("leer producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	purchase := &entity.Purchase{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		CreatedAt: time.Now(),
	}
	if err := uc.purchases.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("registrar compra: %w", err)
	}

	newStock, err := uc.adjuster.Increment(ctx, in.ProductID, in.Quantity)
	if err != nil {
		uc.log.Error().Err(err).
			Str("purchase_id", purchase.ID).
			Str("product_id", in.ProductID).
			Msg("compra registrada pero el stock no subió: estado inconsistente")
		return nil, fmt.Errorf("incrementar stock tras registrar compra %s: %w", purchase.ID, err)
	}

	return toPurchaseResponse(purchase, newStock), nil
}

// List lista compras con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchases.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	items := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPurchaseResponse(p, -1))
	}
	return &dto.PurchaseListResponse{Items: items, Limit: limit, Offset: offset}, nil
}

func toPurchaseResponse(p *entity.Purchase, stockAfter int) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		Total:     p.Total(),
		CreatedAt: p.CreatedAt,
	}
	if stockAfter >= 0 {
		resp.Stock = stockAfter
	}
	return resp
}
