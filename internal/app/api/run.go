package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	salesapiserver "github.com/vendora/sales-api/go"

	accountsmemory "github.com/vendora/sales-api/internal/domains/accounts/adapters/memory"
	accountspostgres "github.com/vendora/sales-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsapp "github.com/vendora/sales-api/internal/domains/accounts/application"
	accountsports "github.com/vendora/sales-api/internal/domains/accounts/ports"

	clientsmemory "github.com/vendora/sales-api/internal/domains/clients/adapters/memory"
	clientspostgres "github.com/vendora/sales-api/internal/domains/clients/adapters/persistence/postgres"
	clientsapp "github.com/vendora/sales-api/internal/domains/clients/application"
	clientsports "github.com/vendora/sales-api/internal/domains/clients/ports"

	catalogmemory "github.com/vendora/sales-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/vendora/sales-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/vendora/sales-api/internal/domains/catalog/application"
	catalogports "github.com/vendora/sales-api/internal/domains/catalog/ports"

	"github.com/vendora/sales-api/internal/domains/orders/adapters/catalogstock"
	"github.com/vendora/sales-api/internal/domains/orders/adapters/clientdir"
	ordersevents "github.com/vendora/sales-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/vendora/sales-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/vendora/sales-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/vendora/sales-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/vendora/sales-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/vendora/sales-api/internal/domains/orders/application"
	ordersports "github.com/vendora/sales-api/internal/domains/orders/ports"

	reportingmemory "github.com/vendora/sales-api/internal/domains/reporting/adapters/memory"
	reportingpostgres "github.com/vendora/sales-api/internal/domains/reporting/adapters/persistence/postgres"
	reportingapp "github.com/vendora/sales-api/internal/domains/reporting/application"
	reportingports "github.com/vendora/sales-api/internal/domains/reporting/ports"

	"github.com/vendora/sales-api/internal/platform/migrations"
	platformobservability "github.com/vendora/sales-api/internal/platform/observability"
	platformpostgres "github.com/vendora/sales-api/internal/platform/postgres"
	"github.com/vendora/sales-api/internal/platform/token"
	"github.com/vendora/sales-api/internal/shared/identity"
)

// Run boots the sales HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "sales-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()
	if cfg.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET not set, using development signing key")
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	tokens := token.NewManager(cfg.JWTSecret, serviceName, cfg.TokenTTL)

	userRepo := buildUserRepository(db, logger)
	clientRepo := buildClientRepository(db, logger)
	productRepo := buildProductRepository(db, logger)
	orderRepo, idemStore := buildOrderRepository(db, logger)

	accountService := accountsapp.NewService(userRepo, tokens)
	clientService := clientsapp.NewService(clientRepo)
	catalogService := catalogapp.NewService(productRepo)

	publisher := buildEventPublisher(cfg, logger)
	if closer, ok := publisher.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	coreOrderService := ordersapp.NewService(
		orderRepo,
		catalogstock.NewReserver(catalogService),
		clientdir.NewDirectory(clientRepo),
		ordersapp.WithIdempotencyStore(idemStore),
		ordersapp.WithEventPublisher(publisher),
	)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var placement ordersports.PlacementOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placement = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)))
	}

	reportingService := reportingapp.NewService(
		buildReportingReader(db, orderRepo, clientRepo, userRepo, logger),
		catalogService,
	)

	handlers := salesapiserver.ApiHandleFunctions{
		UsersAPI:    salesapiserver.NewUsersAPI(accountService),
		ClientsAPI:  salesapiserver.NewClientsAPI(clientService),
		ProductsAPI: salesapiserver.NewProductsAPI(catalogService),
		OrdersAPI:   salesapiserver.NewOrdersAPI(orderService, placement),
		ReportsAPI:  salesapiserver.NewReportsAPI(reportingService),
	}

	router := salesapiserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		identity.Middleware(tokens, logger),
	)
	logger.Info("Sales API listening", slog.String("addr", cfg.Addr))
	if err := router.Run(cfg.Addr); err != nil {
		logger.Error("Sales API server exited", slog.String("addr", cfg.Addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildUserRepository(db *gorm.DB, logger *slog.Logger) accountsports.Repository {
	if db == nil {
		return accountsmemory.NewRepository()
	}
	logger.Info("user repository configured with postgres")
	return accountspostgres.NewRepository(db)
}

func buildClientRepository(db *gorm.DB, logger *slog.Logger) clientsports.Repository {
	if db == nil {
		return clientsmemory.NewRepository()
	}
	logger.Info("client repository configured with postgres")
	return clientspostgres.NewRepository(db)
}

func buildProductRepository(db *gorm.DB, logger *slog.Logger) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	logger.Info("product repository configured with postgres")
	return catalogpostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) (ordersports.Repository, ordersports.IdempotencyStore) {
	if db == nil {
		return ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore()
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), orderspostgres.NewIdempotencyStore(db)
}

func buildReportingReader(db *gorm.DB, orders ordersports.Repository, clients clientsports.Repository, users accountsports.Repository, logger *slog.Logger) reportingports.Reader {
	if db == nil {
		return reportingmemory.NewReader(orders, clients, users)
	}
	logger.Info("reporting reader configured with postgres")
	return reportingpostgres.NewReader(db)
}

func buildEventPublisher(cfg Config, logger *slog.Logger) ordersports.EventPublisher {
	brokers := cfg.KafkaBrokers()
	if len(brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
		return ordersports.NoopPublisher
	}
	logger.Info("order events configured with kafka", slog.String("topic", cfg.KafkaTopic))
	return ordersevents.NewKafkaPublisher(brokers, cfg.KafkaTopic, logger)
}

func connectTemporalClient(instruments *platformobservability.Instruments) (client.Client, error) {
	if os.Getenv("TEMPORAL_DISABLED") == "1" {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := os.Getenv("TEMPORAL_ADDRESS")
	if address == "" {
		address = client.DefaultHostPort
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  address,
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
