// Package billing contiene los casos de uso del ciclo de vida de facturas por sector
// (consulta de estado, aprobación única por período, historial) y las proyecciones
// de reporte que consume el área financiera.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

// ApproveCommand solicita aprobar la factura de un sector en un período.
// ApprovedBy es el usuario que confirma; la confirmación humana es responsabilidad del llamador.
type ApproveCommand struct {
	SectorID   int64
	Month      int
	Year       int
	ApprovedBy int64
}

// LifecycleUseCase es la máquina de estados de cada (sector, período):
//
//	Pending  → no hay factura; el monto es el costo vivo del inventario.
//	Approved → existe factura; el monto es el total congelado y nunca se recalcula.
//
// La única transición es Pending → Approved (Approve). No existe el camino inverso.
type LifecycleUseCase struct {
	sectorRepo    repository.SectorRepository
	extensionRepo repository.ExtensionRepository
	simCardRepo   repository.SimCardRepository
	ledger        repository.InvoiceLedger
	notifier      ApprovalNotifier
	metrics       ApprovalMetrics
	log           zerolog.Logger
	now           func() time.Time
	locks         *keyedLock
}

// LifecycleOption configura LifecycleUseCase.
type LifecycleOption func(*LifecycleUseCase)

// WithClock reemplaza el reloj usado para el período vigente.
func WithClock(now func() time.Time) LifecycleOption {
	return func(uc *LifecycleUseCase) { uc.now = now }
}

// WithNotifier publica un evento por cada aprobación.
func WithNotifier(n ApprovalNotifier) LifecycleOption {
	return func(uc *LifecycleUseCase) { uc.notifier = n }
}

// WithMetrics registra métricas de aprobación.
func WithMetrics(m ApprovalMetrics) LifecycleOption {
	return func(uc *LifecycleUseCase) { uc.metrics = m }
}

// WithLogger inyecta el logger estructurado.
func WithLogger(log zerolog.Logger) LifecycleOption {
	return func(uc *LifecycleUseCase) { uc.log = log }
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	sectorRepo repository.SectorRepository,
	extensionRepo repository.ExtensionRepository,
	simCardRepo repository.SimCardRepository,
	ledger repository.InvoiceLedger,
	opts ...LifecycleOption,
) *LifecycleUseCase {
	uc := &LifecycleUseCase{
		sectorRepo:    sectorRepo,
		extensionRepo: extensionRepo,
		simCardRepo:   simCardRepo,
		ledger:        ledger,
		notifier:      NopNotifier{},
		metrics:       NopMetrics{},
		log:           zerolog.Nop(),
		now:           time.Now,
		locks:         newKeyedLock(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CurrentPeriod devuelve el mes/año del reloj. El día de cierre configurado no se aplica.
func (uc *LifecycleUseCase) CurrentPeriod() entity.Period {
	return entity.PeriodOf(uc.now())
}

// FindInvoice busca la factura aprobada. Devuelve (nil, nil) si el período está pendiente.
func (uc *LifecycleUseCase) FindInvoice(ctx context.Context, sectorID int64, month, year int) (*dto.InvoiceResponse, error) {
	period := entity.Period{Month: month, Year: year}
	if !period.Valid() {
		return nil, domain.NewValidationError("period", "mes debe estar entre 1 y 12 y año ser positivo")
	}
	inv, err := uc.ledger.Find(ctx, sectorID, period)
	if err != nil {
		return nil, fmt.Errorf("buscar factura: %w", err)
	}
	return toInvoiceResponse(inv), nil
}

// PeriodStatus responde si el período está aprobado y por cuánto.
//
// Retorna:
//   - domain.ErrNotFound     si el sector no existe.
//   - domain.ErrInvalidInput si el período es inválido.
func (uc *LifecycleUseCase) PeriodStatus(ctx context.Context, sectorID int64, month, year int) (*dto.PeriodStatusResponse, error) {
	period := entity.Period{Month: month, Year: year}
	if !period.Valid() {
		return nil, domain.NewValidationError("period", "mes debe estar entre 1 y 12 y año ser positivo")
	}
	sector, err := uc.loadSector(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	inv, err := uc.ledger.Find(ctx, sectorID, period)
	if err != nil {
		return nil, fmt.Errorf("buscar factura: %w", err)
	}
	out := &dto.PeriodStatusResponse{
		SectorID:   sector.ID,
		SectorName: sector.Name,
		Month:      period.Month,
		Year:       period.Year,
	}
	if inv != nil {
		out.Status = dto.PeriodApproved
		out.Amount = inv.Total
		out.Invoice = toInvoiceResponse(inv)
		return out, nil
	}
	live, err := uc.liveCost(ctx, sector)
	if err != nil {
		return nil, err
	}
	out.Status = dto.PeriodPending
	out.Amount = live
	return out, nil
}

// CurrentStatus es PeriodStatus para el período vigente del reloj.
func (uc *LifecycleUseCase) CurrentStatus(ctx context.Context, sectorID int64) (*dto.PeriodStatusResponse, error) {
	p := uc.CurrentPeriod()
	return uc.PeriodStatus(ctx, sectorID, p.Month, p.Year)
}

// Approve congela el costo vivo del sector en una factura inmutable.
//
// Política ante una segunda aprobación: error explícito domain.ErrAlreadyApproved, nunca no-op silencioso.
// La verificación y la inserción se serializan por (sector, período) en este proceso; el libro
// además rechaza duplicados de forma atómica, y ese rechazo también se reporta como ErrAlreadyApproved.
//
// Retorna:
//   - domain.ErrInvalidInput    si el período es inválido.
//   - domain.ErrNotFound        si el sector no existe.
//   - domain.ErrAlreadyApproved si el período ya tiene factura.
func (uc *LifecycleUseCase) Approve(ctx context.Context, cmd ApproveCommand) (*dto.InvoiceResponse, error) {
	period := entity.Period{Month: cmd.Month, Year: cmd.Year}
	if !period.Valid() {
		return nil, domain.NewValidationError("period", "mes debe estar entre 1 y 12 y año ser positivo")
	}
	log := uc.log.With().
		Int64("sector_id", cmd.SectorID).
		Int("month", period.Month).
		Int("year", period.Year).
		Logger()

	sector, stored, err := uc.appendInvoice(ctx, cmd, period, log)
	if err != nil {
		return nil, err
	}

	uc.metrics.ObserveApproval(ApprovalResultApproved, stored.Total)
	log.Info().
		Int64("invoice_id", stored.ID).
		Str("total", stored.Total.StringFixed(2)).
		Int64("approved_by", stored.ApprovedBy).
		Msg("factura aprobada")

	// ── 4. Evento (best effort, fuera del lock) ──────────────────────────────
	event := InvoiceApprovedEvent{
		InvoiceID:  stored.ID,
		SectorID:   sector.ID,
		SectorName: sector.Name,
		Month:      period.Month,
		Year:       period.Year,
		Total:      stored.Total,
		ApprovedBy: stored.ApprovedBy,
		ApprovedAt: stored.ApprovedAt,
	}
	if err := uc.notifier.InvoiceApproved(ctx, event); err != nil {
		log.Error().Err(err).Int64("invoice_id", stored.ID).Msg("publicar evento de aprobación")
	}

	return toInvoiceResponse(stored), nil
}

// appendInvoice es la sección crítica de Approve: verificar, calcular y agregar bajo el lock
// de (sector, período). El lock se libera al volver, antes de publicar el evento.
func (uc *LifecycleUseCase) appendInvoice(ctx context.Context, cmd ApproveCommand, period entity.Period, log zerolog.Logger) (*entity.Sector, *entity.Invoice, error) {
	unlock := uc.locks.Lock(approvalKey(cmd.SectorID, period.Month, period.Year))
	defer unlock()

	sector, err := uc.loadSector(ctx, cmd.SectorID)
	if err != nil {
		uc.metrics.ObserveApproval(ApprovalResultError, decimal.Zero)
		return nil, nil, err
	}

	// ── 1. Precondición: período pendiente ───────────────────────────────────
	existing, err := uc.ledger.Find(ctx, sector.ID, period)
	if err != nil {
		uc.metrics.ObserveApproval(ApprovalResultError, decimal.Zero)
		return nil, nil, fmt.Errorf("buscar factura: %w", err)
	}
	if existing != nil {
		uc.metrics.ObserveApproval(ApprovalResultAlreadyApproved, decimal.Zero)
		log.Warn().Int64("invoice_id", existing.ID).Msg("período ya aprobado")
		return nil, nil, domain.ErrAlreadyApproved
	}

	// ── 2. Total sobre el inventario vivo en este instante ───────────────────
	total, err := uc.liveCost(ctx, sector)
	if err != nil {
		uc.metrics.ObserveApproval(ApprovalResultError, decimal.Zero)
		return nil, nil, err
	}

	// ── 3. Agregar al libro ──────────────────────────────────────────────────
	stored, err := uc.ledger.Append(ctx, &entity.Invoice{
		SectorID:   sector.ID,
		Period:     period,
		Total:      total,
		Status:     entity.InvoiceStatusApproved,
		ApprovedBy: cmd.ApprovedBy,
		ApprovedAt: uc.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatePeriod) {
			uc.metrics.ObserveApproval(ApprovalResultAlreadyApproved, decimal.Zero)
			log.Warn().Msg("aprobación concurrente detectada por el libro")
			return nil, nil, domain.ErrAlreadyApproved
		}
		uc.metrics.ObserveApproval(ApprovalResultError, decimal.Zero)
		return nil, nil, fmt.Errorf("agregar factura: %w", err)
	}
	return sector, stored, nil
}

// ApproveCurrent aprueba el período vigente del reloj.
func (uc *LifecycleUseCase) ApproveCurrent(ctx context.Context, sectorID, approvedBy int64) (*dto.InvoiceResponse, error) {
	p := uc.CurrentPeriod()
	return uc.Approve(ctx, ApproveCommand{SectorID: sectorID, Month: p.Month, Year: p.Year, ApprovedBy: approvedBy})
}

// History devuelve las facturas del sector, de la más reciente a la más antigua.
func (uc *LifecycleUseCase) History(ctx context.Context, sectorID int64) ([]dto.InvoiceResponse, error) {
	if _, err := uc.loadSector(ctx, sectorID); err != nil {
		return nil, err
	}
	list, err := uc.ledger.ListForSector(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("historial de facturas: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

func (uc *LifecycleUseCase) loadSector(ctx context.Context, sectorID int64) (*entity.Sector, error) {
	sector, err := uc.sectorRepo.GetByID(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("obtener sector: %w", err)
	}
	if sector == nil {
		return nil, domain.ErrNotFound
	}
	return sector, nil
}

func (uc *LifecycleUseCase) liveCost(ctx context.Context, sector *entity.Sector) (decimal.Decimal, error) {
	exts, err := uc.extensionRepo.ListBySector(ctx, sector.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar ramales: %w", err)
	}
	sims, err := uc.simCardRepo.ListBySector(ctx, sector.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listar chips: %w", err)
	}
	return domainbilling.ComputeSectorMonthlyCost(sector, exts, sims), nil
}
