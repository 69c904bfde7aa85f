package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	appinv "github.com/jhoicas/Costeo-api/internal/application/inventory"
	apppricing "github.com/jhoicas/Costeo-api/internal/application/pricing"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
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

	txRunner := postgres.NewTxRunner(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	recordRepo := postgres.NewRecordRepository(pool)

	// Cola de recomputación: si hay WORKER_URL las tareas se publican a un
	// worker externo; si no, corre un worker en proceso.
	var taskQueue appcosting.Queue
	var inProcess *queue.Worker
	if cfg.Engine.WorkerURL != "" {
		taskQueue = queueForwarder(cfg)
		log.Info().Str("worker_url", cfg.Engine.WorkerURL).Msg("tareas vía worker externo")
	} else {
		var propagateUC *appcosting.PropagateCostUseCase
		inProcess = queue.NewWorker(func(ctx context.Context, task appcosting.Task) error {
			return propagateUC.RecomputeCost(ctx, task.BusinessID, task.ProductID)
		}, log, cfg.Engine.QueueSize, cfg.Engine.RetryAttempts)
		propagateUC = appcosting.NewPropagateCostUseCase(txRunner, inProcess, currencyRepo)
		inProcess.Start(ctx)
		taskQueue = inProcess
	}

	setSuppliesUC := appcosting.NewSetSuppliesUseCase(txRunner, taskQueue)
	setComboUC := appcosting.NewSetComboUseCase(txRunner, currencyRepo)
	recordQuery := appcosting.NewRecordQuery(recordRepo)
	applyMovementUC := appinv.NewApplyMovementUseCase(txRunner, taskQueue, currencyRepo)
	bulkEntryUC := appinv.NewBulkEntryUseCase(txRunner, taskQueue, currencyRepo)
	pricingUC := apppricing.NewPriceTransformationUseCase(txRunner, currencyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SetSupplies:   setSuppliesUC,
		SetCombo:      setComboUC,
		Records:       recordQuery,
		ApplyMovement: applyMovementUC,
		BulkEntry:     bulkEntryUC,
		Pricing:       pricingUC,
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
	if inProcess != nil {
		inProcess.Shutdown()
	}

	log.Info().Msg("aplicación detenida")
}

func queueForwarder(cfg *config.Config) appcosting.Queue {
	return queue.NewForwarder(cfg.Engine.WorkerURL)
}
