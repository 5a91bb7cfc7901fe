package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	catalogmemory "github.com/vendora/sales-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/vendora/sales-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/vendora/sales-api/internal/domains/catalog/application"
	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"

	clientsmemory "github.com/vendora/sales-api/internal/domains/clients/adapters/memory"
	clientspostgres "github.com/vendora/sales-api/internal/domains/clients/adapters/persistence/postgres"
	clientsports "github.com/vendora/sales-api/internal/domains/clients/ports"

	"github.com/vendora/sales-api/internal/domains/orders/adapters/catalogstock"
	"github.com/vendora/sales-api/internal/domains/orders/adapters/clientdir"
	ordersmemory "github.com/vendora/sales-api/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/vendora/sales-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"

	orderworkflows "github.com/vendora/sales-api/internal/durable/temporal/workflows/orders"
	"github.com/vendora/sales-api/internal/platform/migrations"
	platformobservability "github.com/vendora/sales-api/internal/platform/observability"
	platformpostgres "github.com/vendora/sales-api/internal/platform/postgres"
	orderactivities "github.com/vendora/sales-api/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "sales-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	productRepo := buildProductRepository(db, logger)
	clientRepo := buildClientRepository(db, logger)
	orderRepo, idemStore := buildOrderRepository(db, logger)
	catalogService := catalogapp.NewService(productRepo)

	activities := orderactivities.NewActivities(
		catalogstock.NewReserver(catalogService),
		clientdir.NewDirectory(clientRepo),
		orderRepo,
		idemStore,
		ordersports.NoopPublisher,
	)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.CheckClientOwnership, activity.RegisterOptions{Name: orderactivities.CheckClientOwnershipActivityName})
	w.RegisterActivityWithOptions(activities.ReserveLine, activity.RegisterOptions{Name: orderactivities.ReserveLineActivityName})
	w.RegisterActivityWithOptions(activities.ReleaseLine, activity.RegisterOptions{Name: orderactivities.ReleaseLineActivityName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildProductRepository(db *gorm.DB, logger *slog.Logger) catalogports.Repository {
	if db == nil {
		logger.Warn("worker using in-memory product repository")
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func buildClientRepository(db *gorm.DB, logger *slog.Logger) clientsports.Repository {
	if db == nil {
		logger.Warn("worker using in-memory client repository")
		return clientsmemory.NewRepository()
	}
	return clientspostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) (ordersports.Repository, ordersports.IdempotencyStore) {
	if db == nil {
		logger.Warn("worker using in-memory order repository")
		return ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore()
	}
	return orderspostgres.NewRepository(db), orderspostgres.NewIdempotencyStore(db)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
