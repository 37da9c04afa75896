package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/application/usecase"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/infrastructure/memory"
)

func TestUserUseCase_CreateYEmailDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Sectors().Create(ctx, &entity.Sector{Name: "Unidade Sul"}))
	uc := usecase.NewUserUseCase(store.Users(), store.Sectors())

	u, err := uc.Create(ctx, dto.CreateUserRequest{Email: "sul@ephone.local", Password: "123456", Role: "sector", SectorIDs: []int64{1, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, u.SectorIDs)
	assert.Equal(t, "sul@ephone.local", u.DisplayName)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "SUL@ephone.local", Password: "123456", Role: "finance"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_Validaciones(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewUserUseCase(store.Users(), store.Sectors())

	cases := []dto.CreateUserRequest{
		{Email: "a@b.c", Password: "123", Role: "admin"},
		{Email: "no-es-email", Password: "123456", Role: "admin"},
		{Email: "a@b.c", Password: "123456", Role: "root"},
		{Email: "a@b.c", Password: "123456", Role: "sector"},
		{Email: "a@b.c", Password: "123456", Role: "sector", SectorIDs: []int64{9}},
	}
	for _, in := range cases {
		_, err := uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestUserUseCase_UpdateLimpiaSectoresSiNoEsSector(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Sectors().Create(ctx, &entity.Sector{Name: "Unidade Sul"}))
	uc := usecase.NewUserUseCase(store.Users(), store.Sectors())

	u, err := uc.Create(ctx, dto.CreateUserRequest{Email: "x@ephone.local", Password: "123456", Role: "sector", SectorIDs: []int64{1}})
	require.NoError(t, err)

	up, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Email: "x@ephone.local", Role: "finance", SectorIDs: []int64{1}})
	require.NoError(t, err)
	assert.Empty(t, up.SectorIDs)

	_, err = uc.Update(ctx, 99, dto.UpdateUserRequest{Email: "x@ephone.local", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSettingsUseCase(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := usecase.NewSettingsUseCase(store.Settings())

	s, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultClosingDay, s.ClosingDay)

	_, err = uc.Update(ctx, dto.SettingsDTO{ClosingDay: 32})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, dto.SettingsDTO{ClosingDay: 10})
	require.NoError(t, err)
	s, err = uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, s.ClosingDay)
}
