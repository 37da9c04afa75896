package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

var _ repository.InvoiceLedger = (*InvoiceLedger)(nil)

// InvoiceLedger libro append-only de facturas en memoria.
// Append verifica la unicidad y agrega bajo el mismo lock, por lo que dos aprobaciones
// concurrentes del mismo período nunca producen dos facturas.
type InvoiceLedger struct {
	mu       sync.RWMutex
	invoices []*entity.Invoice // orden de inserción
	nextID   int64
}

// NewInvoiceLedger crea un libro vacío.
func NewInvoiceLedger() *InvoiceLedger {
	return &InvoiceLedger{}
}

// Find busca la factura del sector en el período.
func (l *InvoiceLedger) Find(_ context.Context, sectorID int64, period entity.Period) (*entity.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	inv, err := l.find(sectorID, period)
	if err != nil || inv == nil {
		return nil, err
	}
	c := *inv
	return &c, nil
}

// Append inserta una factura nueva con ID asignado.
func (l *InvoiceLedger) Append(_ context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	if invoice == nil {
		return nil, domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	existing, err := l.find(invoice.SectorID, invoice.Period)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("sector %d período %s: %w", invoice.SectorID, invoice.Period, domain.ErrDuplicatePeriod)
	}
	l.nextID++
	stored := *invoice
	stored.ID = l.nextID
	if stored.Status == "" {
		stored.Status = entity.InvoiceStatusApproved
	}
	if stored.ApprovedAt.IsZero() {
		stored.ApprovedAt = time.Now()
	}
	l.invoices = append(l.invoices, &stored)
	out := stored
	return &out, nil
}

// ListForSector devuelve el historial del sector, del período más reciente al más antiguo.
func (l *InvoiceLedger) ListForSector(_ context.Context, sectorID int64) ([]*entity.Invoice, error) {
	out := l.filter(func(inv *entity.Invoice) bool { return inv.SectorID == sectorID })
	slices.SortStableFunc(out, func(a, b *entity.Invoice) int {
		if c := cmp.Compare(b.Period.Year, a.Period.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.Period.Month, a.Period.Month)
	})
	return out, nil
}

// ListApproved devuelve las facturas del período, en orden de inserción.
func (l *InvoiceLedger) ListApproved(_ context.Context, period entity.Period) ([]*entity.Invoice, error) {
	return l.filter(func(inv *entity.Invoice) bool { return inv.Period == period }), nil
}

// ListAll devuelve todas las facturas en orden de inserción.
func (l *InvoiceLedger) ListAll(_ context.Context) ([]*entity.Invoice, error) {
	return l.filter(func(*entity.Invoice) bool { return true }), nil
}

// find requiere el lock tomado.
func (l *InvoiceLedger) find(sectorID int64, period entity.Period) (*entity.Invoice, error) {
	var found *entity.Invoice
	for _, inv := range l.invoices {
		if inv.SectorID != sectorID || inv.Period != period {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("sector %d período %s: %w", sectorID, period, domain.ErrLedgerInconsistent)
		}
		found = inv
	}
	return found, nil
}

func (l *InvoiceLedger) filter(keep func(*entity.Invoice) bool) []*entity.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*entity.Invoice, 0)
	for _, inv := range l.invoices {
		if keep(inv) {
			c := *inv
			out = append(out, &c)
		}
	}
	return out
}
