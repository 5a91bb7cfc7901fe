//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vendora/sales-api/internal/domains/accounts/domain"
	"github.com/vendora/sales-api/internal/domains/accounts/ports"
	"github.com/vendora/sales-api/internal/platform/migrations"
)

func setupAccountsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestRepository_CreateAndLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupAccountsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Email:        "vendor@example.com",
		Name:         "Vera",
		Surname:      "Vendor",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "vendor@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupAccountsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{
		Email:        "vendor@example.com",
		Name:         "Vera",
		Surname:      "Vendor",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{
		Email:        "vendor@example.com",
		Name:         "Other",
		Surname:      "Vendor",
		PasswordHash: "hash",
	})
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}
