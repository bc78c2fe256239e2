package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest alta de cliente. La deuda siempre inicia en cero.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// ClientResponse cliente en respuestas, con su deuda acumulada.
type ClientResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email,omitempty"`
	Address   string          `json:"address,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items  []*ClientResponse `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// DebtResponse deuda actual de un cliente.
type DebtResponse struct {
	ClientID  string          `json:"client_id"`
	TotalDebt decimal.Decimal `json:"total_debt"`
}
