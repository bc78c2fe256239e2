// Package ledger implementa el libro de fiado: la deuda acumulada de cada
// cliente por ventas a crédito. La deuda solo crece — no existe operación
// de abono en este alcance — y la fila del cliente es la única fuente de
// verdad del saldo.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastano/puntoventa-api/internal/domain"
	"github.com/dcastano/puntoventa-api/internal/domain/repository"
)

// UseCase lee y actualiza la deuda de clientes.
type UseCase struct {
	clients repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clients repository.ClientRepository) *UseCase {
	return &UseCase{clients: clients}
}

// CreditSaleResult saldo antes y después, para el comprobante de la caja.
type CreditSaleResult struct {
	ClientID     string
	ClientName   string
	PreviousDebt decimal.Decimal
	NewDebt      decimal.Decimal
	AppliedAt    time.Time
}

// GetDebt devuelve la deuda actual del cliente. ErrNotFound si no existe.
func (uc *UseCase) GetDebt(ctx context.Context, clientID string) (decimal.Decimal, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("leer cliente: %w", err)
	}
	if client == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return client.TotalDebt, nil
}

// ApplyCreditSale suma el total de la venta a la deuda del cliente y
// persiste el nuevo saldo. El total debe ser > 0; se rechaza aquí en el
// borde para que nunca llegue un monto inválido al saldo. La lectura y la
// escritura no están coordinadas entre sesiones: dos cajas sobre el mismo
// cliente pueden perder una actualización (última escritura gana).
// Un único intento de escritura: si falla, el llamador no debe asumir que
// la deuda cambió.
func (uc *UseCase) ApplyCreditSale(ctx context.Context, clientID string, saleTotal decimal.Decimal) (*CreditSaleResult, error) {
	if !saleTotal.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("leer cliente: %w", err)
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	previous := client.TotalDebt
	newDebt := previous.Add(saleTotal)
	if err := uc.clients.UpdateDebt(ctx, clientID, newDebt); err != nil {
		return nil, fmt.Errorf("actualizar deuda: %w", err)
	}
	return &CreditSaleResult{
		ClientID:     client.ID,
		ClientName:   client.Name,
		PreviousDebt: previous,
		NewDebt:      newDebt,
		AppliedAt:    time.Now(),
	}, nil
}
