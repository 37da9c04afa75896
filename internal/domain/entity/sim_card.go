package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimCardStatus estado de una línea móvil.
type SimCardStatus string

const (
	SimCardActive    SimCardStatus = "active"
	SimCardBlocked   SimCardStatus = "blocked"
	SimCardCancelled SimCardStatus = "cancelled"
)

// SimCard representa un chip de línea móvil.
type SimCard struct {
	ID          int64
	Number      string
	Carrier     string // operadora
	SectorID    int64
	Status      SimCardStatus
	MonthlyCost decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el chip está en servicio y es facturable.
func (s *SimCard) IsActive() bool {
	return s.Status == SimCardActive
}

// Valid reporta si el estado es conocido.
func (s SimCardStatus) Valid() bool {
	switch s {
	case SimCardActive, SimCardBlocked, SimCardCancelled:
		return true
	}
	return false
}
