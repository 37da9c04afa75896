package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

func newInvoice(sectorID int64, month, year int, total string) *entity.Invoice {
	return &entity.Invoice{
		SectorID: sectorID,
		Period:   entity.Period{Month: month, Year: year},
		Total:    decimal.RequireFromString(total),
	}
}

func TestInvoiceLedger_AppendAsignaIDYEstado(t *testing.T) {
	ctx := context.Background()
	l := NewInvoiceLedger()

	stored, err := l.Append(ctx, newInvoice(3, 6, 2024, "129.90"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ID)
	assert.Equal(t, entity.InvoiceStatusApproved, stored.Status)
	assert.False(t, stored.ApprovedAt.IsZero())

	found, err := l.Find(ctx, 3, entity.Period{Month: 6, Year: 2024})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, stored.ID, found.ID)

	missing, err := l.Find(ctx, 3, entity.Period{Month: 7, Year: 2024})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInvoiceLedger_AppendDuplicadoFalla(t *testing.T) {
	ctx := context.Background()
	l := NewInvoiceLedger()

	_, err := l.Append(ctx, newInvoice(3, 6, 2024, "129.90"))
	require.NoError(t, err)
	_, err = l.Append(ctx, newInvoice(3, 6, 2024, "1.00"))
	assert.ErrorIs(t, err, domain.ErrDuplicatePeriod)

	all, _ := l.ListAll(ctx)
	assert.Len(t, all, 1)
	assert.Equal(t, "129.9", all[0].Total.String())
}

func TestInvoiceLedger_AppendConcurrenteUnaSolaFactura(t *testing.T) {
	ctx := context.Background()
	l := NewInvoiceLedger()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Append(ctx, newInvoice(1, 1, 2025, "10")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	all, _ := l.ListAll(ctx)
	assert.Len(t, all, 1)
}

func TestInvoiceLedger_FindDetectaInconsistencia(t *testing.T) {
	l := NewInvoiceLedger()
	// Simula un libro corrupto saltando Append.
	l.invoices = append(l.invoices, newInvoice(1, 2, 2024, "1"), newInvoice(1, 2, 2024, "2"))

	_, err := l.Find(context.Background(), 1, entity.Period{Month: 2, Year: 2024})
	assert.ErrorIs(t, err, domain.ErrLedgerInconsistent)
}

func TestInvoiceLedger_ListForSectorOrdenDescendente(t *testing.T) {
	ctx := context.Background()
	l := NewInvoiceLedger()
	for _, p := range []entity.Period{{Month: 11, Year: 2023}, {Month: 2, Year: 2024}, {Month: 12, Year: 2023}, {Month: 1, Year: 2024}} {
		_, err := l.Append(ctx, newInvoice(1, p.Month, p.Year, "1"))
		require.NoError(t, err)
	}
	_, err := l.Append(ctx, newInvoice(2, 3, 2024, "1"))
	require.NoError(t, err)

	list, err := l.ListForSector(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 4)
	got := make([]string, 0, len(list))
	for _, inv := range list {
		got = append(got, inv.Period.String())
	}
	assert.Equal(t, []string{"2/2024", "1/2024", "12/2023", "11/2023"}, got)

	period, _ := l.ListApproved(ctx, entity.Period{Month: 3, Year: 2024})
	require.Len(t, period, 1)
	assert.Equal(t, int64(2), period[0].SectorID)
}

func TestInvoiceLedger_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	l := NewInvoiceLedger()
	stored, err := l.Append(ctx, newInvoice(1, 1, 2024, "50"))
	require.NoError(t, err)

	stored.Total = decimal.NewFromInt(0)
	found, _ := l.Find(ctx, 1, entity.Period{Month: 1, Year: 2024})
	assert.Equal(t, "50", found.Total.String())
}
