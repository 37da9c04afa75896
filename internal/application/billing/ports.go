package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// InvoiceApprovedEvent se emite después de que una factura entra al libro.
type InvoiceApprovedEvent struct {
	InvoiceID  int64
	SectorID   int64
	SectorName string
	Month      int
	Year       int
	Total      decimal.Decimal
	ApprovedBy int64
	ApprovedAt time.Time
}

// ApprovalNotifier publica eventos de aprobación (AMQP en producción, no-op si no hay broker).
// Un error de publicación nunca revierte la factura.
type ApprovalNotifier interface {
	InvoiceApproved(ctx context.Context, event InvoiceApprovedEvent) error
}

// ApprovalMetrics registra el resultado de cada intento de aprobación.
type ApprovalMetrics interface {
	ObserveApproval(result string, total decimal.Decimal)
}

// Resultados de aprobación para ApprovalMetrics.
const (
	ApprovalResultApproved        = "approved"
	ApprovalResultAlreadyApproved = "already_approved"
	ApprovalResultError           = "error"
)

// StatementData datos necesarios para la representación gráfica de una factura aprobada.
type StatementData struct {
	Sector  *entity.Sector
	Invoice *entity.Invoice
	Items   []domainbilling.LineItem
}

// StatementPDFGenerator genera el PDF de la factura de un sector.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, data StatementData) ([]byte, error)
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

func (NopNotifier) InvoiceApproved(context.Context, InvoiceApprovedEvent) error { return nil }

// NopMetrics descarta las métricas.
type NopMetrics struct{}

func (NopMetrics) ObserveApproval(string, decimal.Decimal) {}
