package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/application/billing"
	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixture: tres sectores; "Unidade Norte" (id 3) con un ramal activo de 50.00,
// un chip activo de 79.90 y un chip bloqueado de 49.90.
type fixture struct {
	store  *memory.Store
	ledger *memory.InvoiceLedger
	norte  *entity.Sector
	sul    *entity.Sector
	centro *entity.Sector
	simNor *entity.SimCard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: memory.NewStore(), ledger: memory.NewInvoiceLedger()}
	sectors := f.store.Sectors()
	f.sul = &entity.Sector{Name: "Unidade Sul"}
	f.centro = &entity.Sector{Name: "Unidade Centro"}
	f.norte = &entity.Sector{Name: "Unidade Norte"}
	for _, s := range []*entity.Sector{f.sul, f.centro, f.norte} {
		require.NoError(t, sectors.Create(ctx, s))
	}
	require.Equal(t, int64(3), f.norte.ID)

	exts := f.store.Extensions()
	require.NoError(t, exts.Create(ctx, &entity.Extension{Number: "3001", Kind: entity.ExtensionPhysical, PhysicalLocation: "Diretoria", SectorID: f.norte.ID, Status: entity.ExtensionActive, MonthlyCost: dec("50.00")}))
	require.NoError(t, exts.Create(ctx, &entity.Extension{Number: "1001", Kind: entity.ExtensionSoft, ContactEmail: "sul@example.com", SectorID: f.sul.ID, Status: entity.ExtensionActive, MonthlyCost: dec("30.00")}))

	sims := f.store.SimCards()
	f.simNor = &entity.SimCard{Number: "(11) 98888-4444", Carrier: "Vivo", SectorID: f.norte.ID, Status: entity.SimCardActive, MonthlyCost: dec("79.90")}
	require.NoError(t, sims.Create(ctx, f.simNor))
	require.NoError(t, sims.Create(ctx, &entity.SimCard{Number: "(31) 98888-3333", Carrier: "TIM", SectorID: f.norte.ID, Status: entity.SimCardBlocked, MonthlyCost: dec("49.90")}))
	require.NoError(t, sims.Create(ctx, &entity.SimCard{Number: "(21) 98888-2222", Carrier: "Claro", SectorID: f.centro.ID, Status: entity.SimCardActive, MonthlyCost: dec("65.00")}))
	return f
}

func (f *fixture) lifecycle(opts ...billing.LifecycleOption) *billing.LifecycleUseCase {
	return billing.NewLifecycleUseCase(f.store.Sectors(), f.store.Extensions(), f.store.SimCards(), f.ledger, opts...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []billing.InvoiceApprovedEvent
	err    error
}

func (n *recordingNotifier) InvoiceApproved(_ context.Context, ev billing.InvoiceApprovedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return n.err
}

type recordingMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *recordingMetrics) ObserveApproval(result string, _ decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func TestApprove_CreaFacturaYSegundaLlamadaFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}
	metrics := &recordingMetrics{}
	uc := f.lifecycle(billing.WithNotifier(notifier), billing.WithMetrics(metrics))

	inv, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: 3, Month: 6, Year: 2024, ApprovedBy: 7})
	require.NoError(t, err)
	assert.True(t, dec("129.90").Equal(inv.Total), "total = %s", inv.Total)
	assert.Equal(t, entity.InvoiceStatusApproved, inv.Status)
	assert.Equal(t, int64(7), inv.ApprovedBy)

	_, err = uc.Approve(ctx, billing.ApproveCommand{SectorID: 3, Month: 6, Year: 2024, ApprovedBy: 7})
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	all, err := f.ledger.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "Unidade Norte", notifier.events[0].SectorName)
	assert.Equal(t, []string{billing.ApprovalResultApproved, billing.ApprovalResultAlreadyApproved}, metrics.results)
}

func TestApprove_TotalCongelado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.lifecycle()

	_, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 6, Year: 2024})
	require.NoError(t, err)

	f.simNor.Status = entity.SimCardCancelled
	require.NoError(t, f.store.SimCards().Update(ctx, f.simNor))
	require.NoError(t, f.store.Extensions().Create(ctx, &entity.Extension{Number: "3002", Kind: entity.ExtensionPhysical, PhysicalLocation: "Recepção", SectorID: f.norte.ID, Status: entity.ExtensionActive, MonthlyCost: dec("10.00")}))

	st, err := uc.PeriodStatus(ctx, f.norte.ID, 6, 2024)
	require.NoError(t, err)
	assert.Equal(t, dto.PeriodApproved, st.Status)
	assert.True(t, dec("129.90").Equal(st.Amount), "amount = %s", st.Amount)

	pending, err := uc.PeriodStatus(ctx, f.norte.ID, 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, dto.PeriodPending, pending.Status)
	assert.True(t, dec("60.00").Equal(pending.Amount), "amount = %s", pending.Amount)
	assert.Nil(t, pending.Invoice)
}

func TestApprove_ConcurrenteCreaUnaSolaFactura(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.lifecycle()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 6, Year: 2024})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadyApproved):
			conflicts++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestApprove_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.lifecycle()

	_, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 13, Year: 2024})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Approve(ctx, billing.ApproveCommand{SectorID: 404, Month: 6, Year: 2024})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_FalloDelNotificadorNoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.lifecycle(billing.WithNotifier(&recordingNotifier{err: errors.New("broker caído")}))

	inv, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 6, Year: 2024})
	require.NoError(t, err)

	found, err := uc.FindInvoice(ctx, f.norte.ID, 6, 2024)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, inv.ID, found.ID)
}

// blockingNotifier retiene la publicación hasta que se cierra release.
type blockingNotifier struct {
	started chan struct{}
	release chan struct{}
}

func (n *blockingNotifier) InvoiceApproved(ctx context.Context, _ billing.InvoiceApprovedEvent) error {
	close(n.started)
	select {
	case <-n.release:
	case <-ctx.Done():
	}
	return nil
}

// Un broker lento no debe bloquear a otra aprobación del mismo (sector, período).
func TestApprove_PublicacionLentaNoRetieneElLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	notifier := &blockingNotifier{started: make(chan struct{}), release: make(chan struct{})}
	uc := f.lifecycle(billing.WithNotifier(notifier))

	first := make(chan error, 1)
	go func() {
		_, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 7, Year: 2024})
		first <- err
	}()
	<-notifier.started

	second := make(chan error, 1)
	go func() {
		_, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: 7, Year: 2024})
		second <- err
	}()

	select {
	case err := <-second:
		assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	case <-time.After(2 * time.Second):
		t.Fatal("la segunda aprobación quedó esperando a la publicación del evento")
	}

	close(notifier.release)
	require.NoError(t, <-first)
}

func TestApproveCurrent_UsaElReloj(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2024, time.June, 28, 10, 0, 0, 0, time.UTC) }
	uc := f.lifecycle(billing.WithClock(clock))

	st, err := uc.CurrentStatus(ctx, f.norte.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Month)
	assert.Equal(t, 2024, st.Year)
	assert.Equal(t, dto.PeriodPending, st.Status)

	inv, err := uc.ApproveCurrent(ctx, f.norte.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, inv.Month)
	assert.Equal(t, 2024, inv.Year)
	assert.True(t, clock().Equal(inv.ApprovedAt))

	_, err = uc.ApproveCurrent(ctx, f.norte.ID, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
}

func TestFindInvoice_PendienteDevuelveNil(t *testing.T) {
	f := newFixture(t)
	inv, err := f.lifecycle().FindInvoice(context.Background(), f.norte.ID, 1, 2024)
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestHistory_OrdenDescendente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.lifecycle()

	for _, p := range []entity.Period{{Month: 11, Year: 2023}, {Month: 2, Year: 2024}, {Month: 12, Year: 2023}} {
		_, err := uc.Approve(ctx, billing.ApproveCommand{SectorID: f.norte.ID, Month: p.Month, Year: p.Year})
		require.NoError(t, err)
	}
	hist, err := uc.History(ctx, f.norte.ID)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, [][2]int{{2024, 2}, {2023, 12}, {2023, 11}}, [][2]int{
		{hist[0].Year, hist[0].Month}, {hist[1].Year, hist[1].Month}, {hist[2].Year, hist[2].Month},
	})

	_, err = uc.History(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
