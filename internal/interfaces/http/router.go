package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/puntoventa-api/internal/application/auth"
	"github.com/dcastano/puntoventa-api/internal/application/checkout"
	"github.com/dcastano/puntoventa-api/internal/application/ledger"
	"github.com/dcastano/puntoventa-api/internal/application/purchasing"
	"github.com/dcastano/puntoventa-api/internal/application/stock"
	"github.com/dcastano/puntoventa-api/internal/application/usecase"
	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	ClientUC   *usecase.ClientUseCase
	LedgerUC   *ledger.UseCase
	Adjuster   *stock.Adjuster
	Checkout   *checkout.Service
	Purchasing *purchasing.UseCase
	AuthUC     *auth.AuthUseCase
	Receipts   ReceiptGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Ajustes manuales de stock (protegido, solo admin)
	stockHandler := NewStockHandler(deps.Adjuster)
	products.Post("/:id/stock/increment", RequireRole(entity.RoleAdmin), stockHandler.Increment)
	products.Post("/:id/stock/decrement", RequireRole(entity.RoleAdmin), stockHandler.Decrement)

	// Clientes y su deuda de fiado (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.LedgerUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/debt", clientHandler.GetDebt)

	// Caja: sesión, carrito y paso a pago (protegido)
	sessions := protected.Group("/checkout/sessions")
	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	sessions.Post("/", checkoutHandler.OpenSession)
	sessions.Delete("/:sessionID", checkoutHandler.CloseSession)
	sessions.Get("/:sessionID/cart", checkoutHandler.GetCart)
	sessions.Delete("/:sessionID/cart", checkoutHandler.ClearCart)
	sessions.Post("/:sessionID/cart/items", checkoutHandler.AddItem)
	sessions.Put("/:sessionID/cart/items/:productID", checkoutHandler.SetQuantity)
	sessions.Delete("/:sessionID/cart/items/:productID", checkoutHandler.RemoveItem)
	sessions.Put("/:sessionID/cart/discount", checkoutHandler.SetDiscount)
	sessions.Put("/:sessionID/cart/shipping", checkoutHandler.SetShipping)
	sessions.Post("/:sessionID/checkout", checkoutHandler.Checkout)

	// Pago: borrador y confirmación (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.Checkout, deps.Receipts)
	payments.Get("/drafts/:draftID", paymentHandler.GetDraft)
	payments.Post("/drafts/:draftID/cash", paymentHandler.CompleteCash)
	payments.Post("/drafts/:draftID/qr", paymentHandler.CompleteQR)
	payments.Post("/drafts/:draftID/credit", paymentHandler.CompleteCredit)

	// Compras a proveedor (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Purchasing)
	purchases.Post("/", purchaseHandler.Register)
	purchases.Get("/", purchaseHandler.List)
}
