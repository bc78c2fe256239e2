package checkout

import (
	"context"
	"time"

	domcheckout "github.com/dcastano/puntoventa-api/internal/domain/checkout"
)

// SaleDraft es el traspaso entre la pantalla de venta y la de pago: una
// foto del carrito con su desglose. Reemplaza el viejo traspaso por
// localStorage con un almacén de vida definida: se borra al consumirse y
// expira solo como red de seguridad.
type SaleDraft struct {
	ID        string              `json:"id"`
	SessionID string              `json:"session_id"`
	Lines     []domcheckout.Line  `json:"lines"`
	Summary   domcheckout.Summary `json:"summary"`
	CreatedAt time.Time           `json:"created_at"`
}

// DraftStore puerto del almacén transitorio de borradores de venta.
// Get devuelve (nil, nil) si el borrador no existe o ya expiró.
type DraftStore interface {
	Save(ctx context.Context, draft *SaleDraft) error
	Get(ctx context.Context, id string) (*SaleDraft, error)
	Delete(ctx context.Context, id string) error
}
