package repository

import (
	"context"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// InvoiceLedger es el libro append-only de facturas aprobadas.
// Hay como máximo una factura por (sector, período); no existen operaciones de actualización ni borrado.
type InvoiceLedger interface {
	// Find busca la factura exacta. Devuelve (nil, nil) si el período está pendiente y
	// domain.ErrLedgerInconsistent si encuentra más de una.
	Find(ctx context.Context, sectorID int64, period entity.Period) (*entity.Invoice, error)
	// Append inserta la factura y le asigna ID. Devuelve domain.ErrDuplicatePeriod si el
	// período ya tiene factura; la verificación y la inserción son atómicas.
	Append(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error)
	// ListForSector ordena por (año, mes) descendente; empates por orden de inserción.
	ListForSector(ctx context.Context, sectorID int64) ([]*entity.Invoice, error)
	ListApproved(ctx context.Context, period entity.Period) ([]*entity.Invoice, error)
	ListAll(ctx context.Context) ([]*entity.Invoice, error)
}
