package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/dcastano/puntoventa-api/internal/application/auth"
	"github.com/dcastano/puntoventa-api/internal/application/checkout"
	"github.com/dcastano/puntoventa-api/internal/application/ledger"
	"github.com/dcastano/puntoventa-api/internal/application/purchasing"
	"github.com/dcastano/puntoventa-api/internal/application/stock"
	"github.com/dcastano/puntoventa-api/internal/application/usecase"
	infrapdf "github.com/dcastano/puntoventa-api/internal/infrastructure/pdf"
	"github.com/dcastano/puntoventa-api/internal/infrastructure/postgres"
	"github.com/dcastano/puntoventa-api/internal/infrastructure/redisstore"
	httpRouter "github.com/dcastano/puntoventa-api/internal/interfaces/http"
	"github.com/dcastano/puntoventa-api/pkg/config"
	"github.com/dcastano/puntoventa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	draftTTL := time.Duration(cfg.Redis.DraftTTLMinutes) * time.Minute
	draftStore := redisstore.NewDraftStore(rdb, draftTTL)

	productUC := usecase.NewProductUseCase(productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	ledgerUC := ledger.NewUseCase(clientRepo)
	adjuster := stock.NewAdjuster(productRepo)
	checkoutSvc := checkout.NewService(productRepo, ledgerUC, adjuster, draftStore, log)
	purchasingUC := purchasing.NewUseCase(purchaseRepo, productRepo, adjuster, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Punto de Venta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		ClientUC:   clientUC,
		LedgerUC:   ledgerUC,
		Adjuster:   adjuster,
		Checkout:   checkoutSvc,
		Purchasing: purchasingUC,
		AuthUC:     authUC,
		Receipts:   receipts,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
