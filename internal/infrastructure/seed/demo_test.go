package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/infrastructure/memory"
	"github.com/jhoicas/ephone-api/internal/infrastructure/seed"
)

func TestDemo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	target := seed.Target{
		Sectors: store.Sectors(), Extensions: store.Extensions(), SimCards: store.SimCards(),
		Users: store.Users(), Settings: store.Settings(),
	}

	loaded, err := seed.Demo(ctx, target)
	require.NoError(t, err)
	assert.True(t, loaded)

	sectors, _ := store.Sectors().List(ctx)
	exts, _ := store.Extensions().List(ctx)
	sims, _ := store.SimCards().List(ctx)
	users, _ := store.Users().List(ctx)
	assert.Len(t, sectors, 3)
	assert.Len(t, exts, 4)
	assert.Len(t, sims, 4)
	assert.Len(t, users, 4)

	// Unidade Norte: ramal 50.00 + chip 79.90; el chip bloqueado no suma.
	norte := sectors[2]
	assert.Equal(t, "129.9", domainbilling.ComputeSectorMonthlyCost(norte, exts, sims).String())

	loaded, err = seed.Demo(ctx, target)
	require.NoError(t, err)
	assert.False(t, loaded, "no se duplica si ya hay datos")
}
