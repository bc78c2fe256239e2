package repository

import (
	"context"

	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (login de caja).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
