package billing_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/application/billing"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/infrastructure/memory"
)

type fakePDF struct {
	data billing.StatementData
}

func (g *fakePDF) GenerateStatementPDF(_ context.Context, data billing.StatementData) ([]byte, error) {
	g.data = data
	return []byte("%PDF-1.3"), nil
}

func (f *fixture) reporting(gen billing.StatementPDFGenerator) *billing.ReportingUseCase {
	return billing.NewReportingUseCase(f.store.Sectors(), f.store.Extensions(), f.store.SimCards(), f.ledger, gen, zerolog.Nop())
}

// Un sector aprobado de tres: aprobado = total congelado; pendiente = costo vivo de los otros dos.
func TestPeriodSummary_UnoDeTresAprobado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lifecycle().Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 6, Year: 2024})
	require.NoError(t, err)

	sum, err := f.reporting(nil).PeriodSummary(ctx, 6, 2024)
	require.NoError(t, err)
	assert.True(t, dec("129.90").Equal(sum.ApprovedTotal), "approved = %s", sum.ApprovedTotal)
	assert.True(t, dec("95.00").Equal(sum.PendingTotal), "pending = %s", sum.PendingTotal)

	require.Len(t, sum.Sectors, 3)
	bySector := map[int64]bool{}
	for _, row := range sum.Sectors {
		bySector[row.SectorID] = row.Approved
		if !row.Approved {
			assert.True(t, row.Total.IsZero(), "pendiente figura con total 0")
			assert.False(t, row.LiveCost.IsZero())
		}
	}
	assert.True(t, bySector[f.norte.ID])
	assert.False(t, bySector[f.sul.ID])
	assert.False(t, bySector[f.centro.ID])
}

func TestPeriodSummary_PeriodoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.reporting(nil).PeriodSummary(context.Background(), 0, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSectorDetail_PendienteDevuelveVacio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.reporting(nil)

	items, err := uc.SectorDetail(ctx, f.norte.ID, 6, 2024)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, err = uc.SectorDetail(ctx, 404, 6, 2024)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSectorDetail_AprobadoListaActivos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.lifecycle().Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 6, Year: 2024})
	require.NoError(t, err)

	items, err := f.reporting(nil).SectorDetail(ctx, f.norte.ID, 6, 2024)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "extension", items[0].Type)
	assert.Equal(t, "3001", items[0].Number)
	assert.Equal(t, "sim_card", items[1].Type)
}

func TestApprovedSectors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lc := f.lifecycle()
	for _, cmd := range []billing.ApproveCommand{
		{SectorID: f.norte.ID, Month: 5, Year: 2024},
		{SectorID: f.norte.ID, Month: 6, Year: 2024},
		{SectorID: f.centro.ID, Month: 6, Year: 2024},
	} {
		_, err := lc.Approve(ctx, cmd)
		require.NoError(t, err)
	}

	out, err := f.reporting(nil).ApprovedSectors(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Unidade Centro", out[0].SectorName)
	assert.Equal(t, []string{"6/2024"}, out[0].Periods)
	assert.Equal(t, "Unidade Norte", out[1].SectorName)
	assert.Equal(t, []string{"6/2024", "5/2024"}, out[1].Periods)
}

func TestInvoiceStatementPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gen := &fakePDF{}
	uc := f.reporting(gen)

	_, _, err := uc.InvoiceStatementPDF(ctx, f.norte.ID, 6, 2024)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.lifecycle().Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 6, Year: 2024})
	require.NoError(t, err)

	pdf, name, err := uc.InvoiceStatementPDF(ctx, f.norte.ID, 6, 2024)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "fatura_3_2024_06.pdf", name)
	assert.Equal(t, "Unidade Norte", gen.data.Sector.Name)
	assert.Len(t, gen.data.Items, 2)
}

// duplicatedLedger devuelve dos facturas para el mismo sector en ListApproved,
// como un libro corrompido fuera de la aplicación.
type duplicatedLedger struct {
	*memory.InvoiceLedger
	sectorID int64
}

func (l *duplicatedLedger) ListApproved(_ context.Context, period entity.Period) ([]*entity.Invoice, error) {
	return []*entity.Invoice{
		{ID: 1, SectorID: l.sectorID, Period: period, Total: dec("10.00"), Status: entity.InvoiceStatusApproved},
		{ID: 2, SectorID: l.sectorID, Period: period, Total: dec("20.00"), Status: entity.InvoiceStatusApproved},
	}, nil
}

func TestPeriodSummary_LibroInconsistenteNoSumaDosVeces(t *testing.T) {
	f := newFixture(t)
	ledger := &duplicatedLedger{InvoiceLedger: memory.NewInvoiceLedger(), sectorID: f.norte.ID}
	uc := billing.NewReportingUseCase(f.store.Sectors(), f.store.Extensions(), f.store.SimCards(), ledger, &fakePDF{}, zerolog.Nop())

	out, err := uc.PeriodSummary(context.Background(), 3, 2024)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrLedgerInconsistent)
}
