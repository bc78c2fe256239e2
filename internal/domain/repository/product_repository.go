package repository

import (
	"context"

	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock escribe el stock absoluto calculado por el ajustador; la
// lectura previa y la escritura NO son atómicas entre sesiones (limitación
// conocida: última escritura gana).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, search, category string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock int) error
	Delete(ctx context.Context, id string) error
}
