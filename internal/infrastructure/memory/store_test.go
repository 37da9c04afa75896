package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/infrastructure/memory"
)

func TestStore_SectorCRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Sectors()

	s := &entity.Sector{Name: "Escola Matriz", TaxID: "11.111.111/0001-11", CostCenterCode: "CR100"}
	require.NoError(t, repo.Create(ctx, s))
	assert.Equal(t, int64(1), s.ID)

	s.Name = "Escola Sede"
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Escola Sede", got.Name)

	missing, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Update(ctx, &entity.Sector{ID: 42}), domain.ErrNotFound)
}

func TestStore_ListBySectorYCopias(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sims := store.SimCards()

	require.NoError(t, sims.Create(ctx, &entity.SimCard{Number: "a", SectorID: 1, Status: entity.SimCardActive, MonthlyCost: decimal.NewFromInt(10)}))
	require.NoError(t, sims.Create(ctx, &entity.SimCard{Number: "b", SectorID: 2, Status: entity.SimCardActive, MonthlyCost: decimal.NewFromInt(20)}))

	list, err := sims.ListBySector(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Number)

	list[0].Status = entity.SimCardCancelled
	again, _ := sims.GetByID(ctx, list[0].ID)
	assert.Equal(t, entity.SimCardActive, again.Status, "mutar la copia no altera el store")
}

func TestStore_UserEmailUnico(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()

	require.NoError(t, users.Create(ctx, &entity.User{Email: "admin@ephone.com", Role: entity.RoleAdmin}))
	err := users.Create(ctx, &entity.User{Email: "ADMIN@ephone.com", Role: entity.RoleFinance})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := users.FindByEmail(ctx, "Admin@Ephone.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
}

func TestStore_SettingsPorDefecto(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Settings()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultClosingDay, s.ClosingDay)

	require.NoError(t, repo.Save(ctx, &entity.Settings{ClosingDay: 10}))
	s, _ = repo.Get(ctx)
	assert.Equal(t, 10, s.ClosingDay)
}
