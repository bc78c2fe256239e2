package entity

import "time"

// Roles de usuario de la caja.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario que puede iniciar sesión en el punto de venta.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | vendedor
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
