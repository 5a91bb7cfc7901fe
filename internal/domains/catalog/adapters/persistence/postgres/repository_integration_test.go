//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vendora/sales-api/internal/domains/catalog/domain"
	"github.com/vendora/sales-api/internal/domains/catalog/ports"
	"github.com/vendora/sales-api/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("sales_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedProduct(t *testing.T, repo *Repository, name string, stock int64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, "integration seed", []string{"test"}, decimal.RequireFromString("9.99"), stock)
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	return created
}

func TestRepository_ReserveDecrementsStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	product := seedProduct(t, repo, "Anvil", 10)

	updated, err := repo.Reserve(ctx, product.ID, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 6, updated.Stock)

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, fetched.Stock)
}

func TestRepository_ReserveInsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	product := seedProduct(t, repo, "Anvil", 3)

	_, err := repo.Reserve(ctx, product.ID, 5)
	var stockErr *ports.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Anvil", stockErr.ProductName)
	assert.EqualValues(t, 5, stockErr.Requested)
	assert.EqualValues(t, 3, stockErr.Available)

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, fetched.Stock, "failed reservation must not mutate stock")
}

func TestRepository_ConcurrentReserveNeverOversells(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	product := seedProduct(t, repo, "Anvil", 10)

	const workers = 20
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Reserve(ctx, product.ID, 1); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	won := 0
	for range successes {
		won++
	}
	assert.Equal(t, 10, won, "exactly the available stock may be reserved")

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, fetched.Stock)
}

func TestRepository_ReleaseRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	product := seedProduct(t, repo, "Anvil", 5)

	_, err := repo.Reserve(ctx, product.ID, 5)
	require.NoError(t, err)
	require.NoError(t, repo.Release(ctx, product.ID, 5))

	fetched, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, fetched.Stock)
}

func TestRepository_SearchMatchesNameAndDescription(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	hammer, err := domain.NewProduct("Claw Hammer", "steel head", nil, decimal.RequireFromString("12.00"), 5)
	require.NoError(t, err)
	_, err = repo.Create(ctx, hammer)
	require.NoError(t, err)

	kit, err := domain.NewProduct("Tool Kit", "includes a hammer and pliers", nil, decimal.RequireFromString("40.00"), 5)
	require.NoError(t, err)
	_, err = repo.Create(ctx, kit)
	require.NoError(t, err)

	results, err := repo.Search(ctx, "hammer", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Claw Hammer", results[0].Name, "name matches rank above description matches")
}
