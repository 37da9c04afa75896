package entity

import "time"

// Sector representa una unidad organizacional dueña de ramales y chips; se factura por período.
type Sector struct {
	ID             int64
	Name           string
	TaxID          string // CNPJ
	CostCenterCode string // centro de resultado (CR)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
