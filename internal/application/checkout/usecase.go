// Package checkout orquesta la venta en curso: sesiones de caja con su
// carrito, el traspaso carrito→pago vía borrador, y la confirmación por
// efectivo, QR o crédito.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/puntoventa-api/internal/application/ledger"
	"github.com/dcastano/puntoventa-api/internal/application/stock"
	"github.com/dcastano/puntoventa-api/internal/domain"
	domcheckout "github.com/dcastano/puntoventa-api/internal/domain/checkout"
	"github.com/dcastano/puntoventa-api/internal/domain/entity"
	"github.com/dcastano/puntoventa-api/internal/domain/repository"
	"github.com/dcastano/puntoventa-api/pkg/logger"
)

// Service mantiene las sesiones de caja y confirma ventas. Cada carrito
// pertenece a exactamente una sesión; el mutex protege el mapa de sesiones
// porque los handlers HTTP corren concurrentes, no porque el carrito se
// comparta.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*domcheckout.Cart

	products repository.ProductRepository
	ledger   *ledger.UseCase
	stock    *stock.Adjuster
	drafts   DraftStore
	log      *logger.Logger
}

// NewService construye el servicio de caja.
func NewService(
	products repository.ProductRepository,
	ledgerUC *ledger.UseCase,
	adjuster *stock.Adjuster,
	drafts DraftStore,
	log *logger.Logger,
) *Service {
	return &Service{
		sessions: make(map[string]*domcheckout.Cart),
		products: products,
		ledger:   ledgerUC,
		stock:    adjuster,
		drafts:   drafts,
		log:      log,
	}
}

// OpenSession crea una sesión de caja con carrito vacío y devuelve su id.
func (s *Service) OpenSession() string {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = domcheckout.New()
	s.mu.Unlock()
	return id
}

// CloseSession descarta la sesión y su carrito.
func (s *Service) CloseSession(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func (s *Service) cart(sessionID string) (*domcheckout.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return c, nil
}

// AddItem agrega una unidad del producto al carrito de la sesión. No
// verifica stock: la política de esta caja es validar stock únicamente al
// confirmar la venta, no al armar el carrito.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("leer producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	s.mu.Lock()
	cart.AddItem(product.ID, product.Name, product.Price)
	s.mu.Unlock()
	return s.view(sessionID, cart), nil
}

// SetQuantity fija la cantidad de una línea (≤ 0 la elimina).
func (s *Service) SetQuantity(sessionID, productID string, quantity int) (*CartView, error) {
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	cart.SetQuantity(productID, quantity)
	s.mu.Unlock()
	return s.view(sessionID, cart), nil
}

// RemoveItem elimina la línea del producto.
func (s *Service) RemoveItem(sessionID, productID string) (*CartView, error) {
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	cart.RemoveItem(productID)
	s.mu.Unlock()
	return s.view(sessionID, cart), nil
}

// ClearCart vacía el carrito y reinicia descuento y domicilio.
func (s *Service) ClearCart(sessionID string) (*CartView, error) {
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	cart.Clear()
	s.mu.Unlock()
	return s.view(sessionID, cart), nil
}

// SetDiscount aplica descuento por monto o porcentaje; el motor acota el
// resultado a [0, subtotal].
func (s *Service) SetDiscount(sessionID string, value decimal.Decimal, mode string) (*CartView, error) {
	if mode != domcheckout.DiscountAmount && mode != domcheckout.DiscountPercentage {
		return nil, domain.ErrInvalidInput
	}
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	cart.SetDiscount(value, mode)
	s.mu.Unlock()
	return s.view(sessionID, cart), nil
}

// SetShipping fija el domicilio; los valores negativos se rechazan aquí en
// el borde, el motor no los defiende.
func (s *Service) SetShipping(sessionID string, amount decimal.Decimal) (*CartView, error) {
	if amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	cart.SetShipping(amount)
	s.mu.Unlock()
	return s.view(sessionID, cart), nil
}

// GetCart devuelve el carrito con su desglose recalculado.
func (s *Service) GetCart(sessionID string) (*CartView, error) {
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, cart), nil
}

// CartView carrito más desglose para la capa HTTP.
type CartView struct {
	SessionID string
	Lines     []domcheckout.Line
	Summary   domcheckout.Summary
}

func (s *Service) view(sessionID string, cart *domcheckout.Cart) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &CartView{SessionID: sessionID, Lines: cart.Lines(), Summary: cart.Summary()}
}

// Checkout congela el carrito en un borrador de venta y devuelve su id.
// La pantalla de pago lee el borrador y lo consume al confirmar. El
// carrito de la sesión queda intacto hasta la confirmación.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*SaleDraft, error) {
	cart, err := s.cart(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	empty := cart.IsEmpty()
	lines := cart.Lines()
	summary := cart.Summary()
	s.mu.Unlock()
	if empty {
		return nil, domain.ErrInvalidInput
	}

	draft := &SaleDraft{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Lines:     lines,
		Summary:   summary,
		CreatedAt: time.Now(),
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("guardar borrador: %w", err)
	}
	return draft, nil
}

// GetDraft lee un borrador para la pantalla de pago. Si no existe es un
// error duro: la pantalla debe negarse a continuar.
func (s *Service) GetDraft(ctx context.Context, draftID string) (*SaleDraft, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("leer borrador: %w", err)
	}
	if draft == nil {
		return nil, domain.ErrDraftNotFound
	}
	return draft, nil
}

// CompleteCash confirma un pago en efectivo: exige recibido ≥ total,
// descuenta stock, consume el borrador y limpia el carrito de la sesión.
func (s *Service) CompleteCash(ctx context.Context, draftID string, received decimal.Decimal) (*entity.Sale, error) {
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if received.LessThan(draft.Summary.Total) {
		return nil, domain.ErrInvalidInput
	}
	if err := s.decrementStock(ctx, draft); err != nil {
		return nil, err
	}
	s.consume(ctx, draft)

	sale := saleFromDraft(draft, entity.PaymentCash)
	sale.ReceivedAmount = received
	sale.Change = received.Sub(draft.Summary.Total)
	return sale, nil
}

// CompleteQR confirma un pago por QR: el monto recibido es el total exacto.
func (s *Service) CompleteQR(ctx context.Context, draftID string) (*entity.Sale, error) {
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := s.decrementStock(ctx, draft); err != nil {
		return nil, err
	}
	s.consume(ctx, draft)

	sale := saleFromDraft(draft, entity.PaymentQR)
	sale.ReceivedAmount = draft.Summary.Total
	sale.Change = decimal.Zero
	return sale, nil
}

// CompleteCredit confirma una venta fiada: descuenta stock y luego carga
// el total a la deuda del cliente. Son dos escrituras separadas sin
// transacción compartida: si la segunda falla el stock ya quedó
// descontado y no se revierte. Brecha conocida de este diseño; se registra
// en el log y el error sube al llamador.
func (s *Service) CompleteCredit(ctx context.Context, draftID, clientID string) (*entity.Sale, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := s.decrementStock(ctx, draft); err != nil {
		return nil, err
	}

	result, err := s.ledger.ApplyCreditSale(ctx, clientID, draft.Summary.Total)
	if err != nil {
		s.log.Error().Err(err).
			Str("draft_id", draftID).
			Str("client_id", clientID).
			Msg("stock descontado pero la deuda no se registró: estado inconsistente")
		return nil, fmt.Errorf("registrar fiado tras descontar stock: %w", err)
	}
	s.consume(ctx, draft)

	sale := saleFromDraft(draft, entity.PaymentCredit)
	sale.ReceivedAmount = decimal.Zero
	sale.Change = decimal.Zero
	sale.ClientID = result.ClientID
	sale.ClientName = result.ClientName
	sale.PreviousDebt = result.PreviousDebt
	sale.NewDebt = result.NewDebt
	return sale, nil
}

func (s *Service) decrementStock(ctx context.Context, draft *SaleDraft) error {
	items := make([]stock.Item, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		items = append(items, stock.Item{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return s.stock.DecrementMany(ctx, items)
}

// consume borra el borrador y limpia el carrito de la sesión de origen.
// Ninguno de los dos fallos impide entregar el comprobante: la venta ya
// está cobrada.
func (s *Service) consume(ctx context.Context, draft *SaleDraft) {
	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		s.log.Warn().Err(err).Str("draft_id", draft.ID).Msg("no se pudo borrar el borrador consumido")
	}
	s.mu.Lock()
	if cart, ok := s.sessions[draft.SessionID]; ok {
		cart.Clear()
	}
	s.mu.Unlock()
}

func saleFromDraft(draft *SaleDraft, method string) *entity.Sale {
	items := make([]entity.SaleItem, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		items = append(items, entity.SaleItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	return &entity.Sale{
		Items:         items,
		Subtotal:      draft.Summary.Subtotal,
		Discount:      draft.Summary.Discount,
		Shipping:      draft.Summary.Shipping,
		Total:         draft.Summary.Total,
		PaymentMethod: method,
		Date:          time.Now(),
	}
}
