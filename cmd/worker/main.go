package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	appinv "github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

// El worker procesa las tareas de recomputación de costos publicadas por el
// API y corre la reconciliación periódica de totales de stock.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando worker")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)

	// Los dependientes que descubre una recomputación se re-encolan en la
	// misma cola local.
	var propagateUC *appcosting.PropagateCostUseCase
	worker := queue.NewWorker(func(ctx context.Context, task appcosting.Task) error {
		return propagateUC.RecomputeCost(ctx, task.BusinessID, task.ProductID)
	}, log, cfg.Engine.QueueSize, cfg.Engine.RetryAttempts)
	propagateUC = appcosting.NewPropagateCostUseCase(txRunner, worker, currencyRepo)
	worker.Start(ctx)

	// Reconciliación periódica de TotalQuantity contra el libro de stock.
	reconcileUC := appinv.NewReconcileTotalsUseCase(txRunner)
	scheduler := cron.New()
	if cfg.Engine.BusinessID != "" {
		_, err := scheduler.AddFunc(cfg.Engine.ReconcileCron, func() {
			repaired, err := reconcileUC.Reconcile(context.Background(), cfg.Engine.BusinessID)
			if err != nil {
				log.Error().Err(err).Msg("reconciliación de totales")
				return
			}
			log.Info().Int("repaired", repaired).Msg("reconciliación de totales completada")
		})
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Engine.ReconcileCron).Msg("expresión cron inválida")
		}
		scheduler.Start()
	} else {
		log.Warn().Msg("ENGINE_BUSINESS_ID vacío: reconciliación periódica deshabilitada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name + "-worker",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name + "-worker"})
	})

	taskHandler := httpRouter.NewWorkerHandler(worker)
	app.Post("/tasks", taskHandler.ReceiveTask)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor del worker finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor del worker")
	}
	<-scheduler.Stop().Done()
	worker.Shutdown()

	log.Info().Msg("worker detenido")
}
