package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ephone-api/pkg/config"
)

// Pruebas de integración: requieren TEST_DATABASE_URL apuntando a una base descartable.
// Cada prueba corre dentro de una transacción que se revierte al final.
func withTx(t *testing.T, fn func(ctx context.Context, repos postgres.Repos)) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, postgres.RunMigrations(pool))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	fn(ctx, postgres.NewRepos(tx))
}

func TestInvoiceLedger_AppendDuplicado(t *testing.T) {
	withTx(t, func(ctx context.Context, repos postgres.Repos) {
		sector := &entity.Sector{Name: "Unidade Norte", TaxID: "1", CostCenterCode: "CC-3"}
		require.NoError(t, repos.Sectors.Create(ctx, sector))

		inv := &entity.Invoice{SectorID: sector.ID, Period: entity.Period{Month: 6, Year: 2024}, Total: decimal.RequireFromString("129.90")}
		stored, err := repos.Ledger.Append(ctx, inv)
		require.NoError(t, err)
		assert.NotZero(t, stored.ID)
		assert.Equal(t, entity.InvoiceStatusApproved, stored.Status)

		found, err := repos.Ledger.Find(ctx, sector.ID, inv.Period)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, decimal.RequireFromString("129.90").Equal(found.Total))
	})
}

func TestInvoiceLedger_UnicidadPorIndice(t *testing.T) {
	withTx(t, func(ctx context.Context, repos postgres.Repos) {
		sector := &entity.Sector{Name: "Unidade Sul", TaxID: "1", CostCenterCode: "CC-1"}
		require.NoError(t, repos.Sectors.Create(ctx, sector))

		period := entity.Period{Month: 1, Year: 2025}
		_, err := repos.Ledger.Append(ctx, &entity.Invoice{SectorID: sector.ID, Period: period})
		require.NoError(t, err)

		// Último comando: el error de unicidad aborta la transacción de prueba.
		_, err = repos.Ledger.Append(ctx, &entity.Invoice{SectorID: sector.ID, Period: period})
		assert.ErrorIs(t, err, domain.ErrDuplicatePeriod)
	})
}

func TestUserRepo_SectoresYEmail(t *testing.T) {
	withTx(t, func(ctx context.Context, repos postgres.Repos) {
		s1 := &entity.Sector{Name: "A", TaxID: "1", CostCenterCode: "1"}
		s2 := &entity.Sector{Name: "B", TaxID: "2", CostCenterCode: "2"}
		require.NoError(t, repos.Sectors.Create(ctx, s1))
		require.NoError(t, repos.Sectors.Create(ctx, s2))

		u := &entity.User{Email: "gestor@ephone.local", PasswordHash: "x", DisplayName: "Gestor", Role: entity.RoleSector, SectorIDs: []int64{s2.ID, s1.ID}}
		require.NoError(t, repos.Users.Create(ctx, u))

		got, err := repos.Users.FindByEmail(ctx, "GESTOR@ephone.local")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.ElementsMatch(t, []int64{s1.ID, s2.ID}, got.SectorIDs)

		err = repos.Users.Create(ctx, &entity.User{Email: "gestor@EPHONE.local", PasswordHash: "x", DisplayName: "x", Role: entity.RoleAdmin})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}
