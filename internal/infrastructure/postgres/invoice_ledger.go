package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.InvoiceLedger = (*InvoiceLedger)(nil)

// InvoiceLedger libro de facturas sobre la tabla invoices.
// La unicidad por período la garantiza uq_invoices_sector_period: dos aprobaciones concurrentes
// desde procesos distintos terminan con una sola fila y un ErrDuplicatePeriod.
type InvoiceLedger struct {
	q Querier
}

// NewInvoiceLedger construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceLedger(q Querier) *InvoiceLedger {
	return &InvoiceLedger{q: q}
}

const invoiceColumns = `id, sector_id, month, year, total, status, approved_by, approved_at`

// Find devuelve (nil, nil) si el período está pendiente.
func (l *InvoiceLedger) Find(ctx context.Context, sectorID int64, period entity.Period) (*entity.Invoice, error) {
	list, err := l.list(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE sector_id = $1 AND month = $2 AND year = $3 ORDER BY id LIMIT 2`,
		sectorID, period.Month, period.Year)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, nil
	case 1:
		return list[0], nil
	default:
		return nil, fmt.Errorf("sector %d período %s: %w", sectorID, period, domain.ErrLedgerInconsistent)
	}
}

// Append inserta la factura. Una violación del índice único se traduce a ErrDuplicatePeriod.
func (l *InvoiceLedger) Append(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	if inv == nil {
		return nil, domain.ErrInvalidInput
	}
	status := inv.Status
	if status == "" {
		status = entity.InvoiceStatusApproved
	}
	var approvedBy *int64
	if inv.ApprovedBy != 0 {
		approvedBy = &inv.ApprovedBy
	}
	query := `
		INSERT INTO invoices (sector_id, month, year, total, status, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + invoiceColumns
	approvedAt := inv.ApprovedAt
	if approvedAt.IsZero() {
		approvedAt = time.Now()
	}
	stored, err := scanInvoice(l.q.QueryRow(ctx, query,
		inv.SectorID, inv.Period.Month, inv.Period.Year, inv.Total, status, approvedBy, approvedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("sector %d período %s: %w", inv.SectorID, inv.Period, domain.ErrDuplicatePeriod)
		}
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	return stored, nil
}

// ListForSector ordena por (año, mes) descendente; el id desempata por orden de inserción.
func (l *InvoiceLedger) ListForSector(ctx context.Context, sectorID int64) ([]*entity.Invoice, error) {
	return l.list(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE sector_id = $1 ORDER BY year DESC, month DESC, id`,
		sectorID)
}

func (l *InvoiceLedger) ListApproved(ctx context.Context, period entity.Period) ([]*entity.Invoice, error) {
	return l.list(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE month = $1 AND year = $2 ORDER BY id`,
		period.Month, period.Year)
}

func (l *InvoiceLedger) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	return l.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY id`)
}

func (l *InvoiceLedger) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := l.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv        entity.Invoice
		approvedBy *int64
	)
	err := row.Scan(&inv.ID, &inv.SectorID, &inv.Period.Month, &inv.Period.Year, &inv.Total, &inv.Status, &approvedBy, &inv.ApprovedAt)
	if err != nil {
		return nil, err
	}
	if approvedBy != nil {
		inv.ApprovedBy = *approvedBy
	}
	return &inv, nil
}
