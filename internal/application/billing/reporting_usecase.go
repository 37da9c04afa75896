package billing

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

// ReportingUseCase proyecciones de solo lectura para el área financiera.
// Nunca modifica el libro ni el inventario.
type ReportingUseCase struct {
	sectorRepo    repository.SectorRepository
	extensionRepo repository.ExtensionRepository
	simCardRepo   repository.SimCardRepository
	ledger        repository.InvoiceLedger
	generator     StatementPDFGenerator
	log           zerolog.Logger
}

// NewReportingUseCase construye el caso de uso. generator puede ser nil si no se sirven PDFs.
func NewReportingUseCase(
	sectorRepo repository.SectorRepository,
	extensionRepo repository.ExtensionRepository,
	simCardRepo repository.SimCardRepository,
	ledger repository.InvoiceLedger,
	generator StatementPDFGenerator,
	log zerolog.Logger,
) *ReportingUseCase {
	return &ReportingUseCase{
		sectorRepo:    sectorRepo,
		extensionRepo: extensionRepo,
		simCardRepo:   simCardRepo,
		ledger:        ledger,
		generator:     generator,
		log:           log,
	}
}

// PeriodSummary totaliza el período: lo aprobado suma el total congelado y lo pendiente
// el costo vivo del inventario. En el desglose un sector pendiente figura con Total 0;
// su costo vivo va en LiveCost.
func (uc *ReportingUseCase) PeriodSummary(ctx context.Context, month, year int) (*dto.PeriodSummaryResponse, error) {
	period := entity.Period{Month: month, Year: year}
	if !period.Valid() {
		return nil, domain.NewValidationError("period", "mes debe estar entre 1 y 12 y año ser positivo")
	}

	var (
		sectors  []*entity.Sector
		exts     []*entity.Extension
		sims     []*entity.SimCard
		invoices []*entity.Invoice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sectors, err = uc.sectorRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		exts, err = uc.extensionRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		sims, err = uc.simCardRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		invoices, err = uc.ledger.ListApproved(gctx, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resumen del período: %w", err)
	}

	approved := make(map[int64]*entity.Invoice, len(invoices))
	for _, inv := range invoices {
		if _, dup := approved[inv.SectorID]; dup {
			return nil, fmt.Errorf("sector %d período %s: %w", inv.SectorID, period, domain.ErrLedgerInconsistent)
		}
		approved[inv.SectorID] = inv
	}

	out := &dto.PeriodSummaryResponse{
		Month:         period.Month,
		Year:          period.Year,
		ApprovedTotal: decimal.Zero,
		PendingTotal:  decimal.Zero,
		Sectors:       make([]dto.SectorBreakdownDTO, 0, len(sectors)),
	}
	for _, s := range sectors {
		live := domainbilling.ComputeSectorMonthlyCost(s, exts, sims)
		row := dto.SectorBreakdownDTO{
			SectorID:   s.ID,
			SectorName: s.Name,
			Total:      decimal.Zero,
			LiveCost:   live,
		}
		if inv, ok := approved[s.ID]; ok {
			row.Approved = true
			row.Total = inv.Total
			out.ApprovedTotal = out.ApprovedTotal.Add(inv.Total)
		} else {
			out.PendingTotal = out.PendingTotal.Add(live)
		}
		out.Sectors = append(out.Sectors, row)
	}
	return out, nil
}

// SectorDetail devuelve las líneas de una factura aprobada, reconstruidas a partir del
// inventario activo actual (no de una foto al momento de aprobar).
// Si el período está pendiente o el sector no existe devuelve una lista vacía, nunca error.
func (uc *ReportingUseCase) SectorDetail(ctx context.Context, sectorID int64, month, year int) ([]dto.LineItemResponse, error) {
	items, _, _, err := uc.approvedItems(ctx, sectorID, entity.Period{Month: month, Year: year})
	if err != nil {
		return nil, err
	}
	return toLineItemResponses(items), nil
}

// ApprovedSectors lista los sectores con al menos una factura aprobada y sus períodos,
// del más reciente al más antiguo. Sectores ordenados por nombre.
func (uc *ReportingUseCase) ApprovedSectors(ctx context.Context) ([]dto.ApprovedSectorDTO, error) {
	invoices, err := uc.ledger.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	sectors, err := uc.sectorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar sectores: %w", err)
	}
	periods := make(map[int64][]entity.Period)
	for _, inv := range invoices {
		periods[inv.SectorID] = append(periods[inv.SectorID], inv.Period)
	}

	out := make([]dto.ApprovedSectorDTO, 0, len(periods))
	for _, s := range sectors {
		ps, ok := periods[s.ID]
		if !ok {
			continue
		}
		slices.SortStableFunc(ps, func(a, b entity.Period) int {
			switch {
			case a.After(b):
				return -1
			case b.After(a):
				return 1
			}
			return 0
		})
		labels := make([]string, 0, len(ps))
		for _, p := range ps {
			labels = append(labels, p.String())
		}
		out = append(out, dto.ApprovedSectorDTO{SectorID: s.ID, SectorName: s.Name, Periods: labels})
	}
	slices.SortFunc(out, func(a, b dto.ApprovedSectorDTO) int {
		return cmp.Compare(a.SectorName, b.SectorName)
	})
	return out, nil
}

// InvoiceStatementPDF genera el PDF de la factura aprobada y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound     si el sector no existe o el período no está aprobado.
//   - domain.ErrInvalidInput si el período es inválido.
func (uc *ReportingUseCase) InvoiceStatementPDF(ctx context.Context, sectorID int64, month, year int) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	period := entity.Period{Month: month, Year: year}
	if !period.Valid() {
		return nil, "", domain.NewValidationError("period", "mes debe estar entre 1 y 12 y año ser positivo")
	}
	items, sector, inv, err := uc.approvedItems(ctx, sectorID, period)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.generator.GenerateStatementPDF(ctx, StatementData{Sector: sector, Invoice: inv, Items: items})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	uc.log.Debug().Int64("sector_id", sectorID).Str("period", period.String()).Int("bytes", len(pdfBytes)).Msg("pdf generado")

	filename := fmt.Sprintf("fatura_%d_%04d_%02d.pdf", sector.ID, period.Year, period.Month)
	return pdfBytes, filename, nil
}

// approvedItems carga sector, factura y líneas. Con período pendiente, inválido o sector
// inexistente devuelve líneas vacías y factura nil.
func (uc *ReportingUseCase) approvedItems(ctx context.Context, sectorID int64, period entity.Period) ([]domainbilling.LineItem, *entity.Sector, *entity.Invoice, error) {
	empty := []domainbilling.LineItem{}
	if !period.Valid() {
		return empty, nil, nil, nil
	}
	sector, err := uc.sectorRepo.GetByID(ctx, sectorID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener sector: %w", err)
	}
	if sector == nil {
		return empty, nil, nil, nil
	}
	inv, err := uc.ledger.Find(ctx, sectorID, period)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("buscar factura: %w", err)
	}
	if inv == nil {
		return empty, sector, nil, nil
	}
	exts, err := uc.extensionRepo.ListBySector(ctx, sectorID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listar ramales: %w", err)
	}
	sims, err := uc.simCardRepo.ListBySector(ctx, sectorID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listar chips: %w", err)
	}
	return domainbilling.ActiveLineItems(sector, exts, sims), sector, inv, nil
}
