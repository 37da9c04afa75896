package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatusApproved es el único estado persistido: un período pendiente no tiene fila en el libro.
const InvoiceStatusApproved = "approved"

// Invoice representa la factura aprobada de un sector para un período.
// Es inmutable una vez creada; Total es el valor congelado en el momento de la aprobación.
type Invoice struct {
	ID         int64
	SectorID   int64
	Period     Period
	Total      decimal.Decimal
	Status     string
	ApprovedBy int64 // usuario que aprobó (0 si fue una llamada interna)
	ApprovedAt time.Time
}
