package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un período de facturación.
const (
	PeriodPending  = "pending"
	PeriodApproved = "approved"
)

// ApproveInvoiceRequest body para POST /api/sectors/:id/invoices/approve.
type ApproveInvoiceRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// InvoiceResponse factura aprobada.
type InvoiceResponse struct {
	ID         int64           `json:"id"`
	SectorID   int64           `json:"sector_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	ApprovedBy int64           `json:"approved_by,omitempty"`
	ApprovedAt time.Time       `json:"approved_at"`
}

// PeriodStatusResponse estado de un (sector, período).
// Pending: Amount es el costo vivo del inventario. Approved: Amount es el total congelado.
type PeriodStatusResponse struct {
	SectorID   int64            `json:"sector_id"`
	SectorName string           `json:"sector_name"`
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	Status     string           `json:"status"` // pending | approved
	Amount     decimal.Decimal  `json:"amount"`
	Invoice    *InvoiceResponse `json:"invoice,omitempty"`
}

// PeriodSummaryResponse respuesta de GET /api/reports/summary.
type PeriodSummaryResponse struct {
	Month         int                  `json:"month"`
	Year          int                  `json:"year"`
	ApprovedTotal decimal.Decimal      `json:"approved_total"`
	PendingTotal  decimal.Decimal      `json:"pending_total"`
	Sectors       []SectorBreakdownDTO `json:"sectors"`
}

// SectorBreakdownDTO aporte de un sector al resumen.
// Total es el total congelado si está aprobado y 0 si está pendiente; LiveCost es siempre el costo vivo.
type SectorBreakdownDTO struct {
	SectorID   int64           `json:"sector_id"`
	SectorName string          `json:"sector_name"`
	Approved   bool            `json:"approved"`
	Total      decimal.Decimal `json:"total"`
	LiveCost   decimal.Decimal `json:"live_cost"`
}

// LineItemResponse línea de detalle de una factura aprobada.
type LineItemResponse struct {
	Type        string          `json:"type"` // extension | sim_card
	Number      string          `json:"number"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// ApprovedSectorDTO sector con facturas aprobadas y sus períodos ("M/YYYY"), para la consulta detallada.
type ApprovedSectorDTO struct {
	SectorID   int64    `json:"sector_id"`
	SectorName string   `json:"sector_name"`
	Periods    []string `json:"periods"`
}
