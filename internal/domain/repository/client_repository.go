package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// UpdateDebt reemplaza el valor de la deuda y actualiza updated_at; el
// libro de fiado es el único llamador que la incrementa.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	UpdateDebt(ctx context.Context, clientID string, debt decimal.Decimal) error
}
