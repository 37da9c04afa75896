package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtensionKind tipo de ramal.
type ExtensionKind string

const (
	ExtensionPhysical ExtensionKind = "physical"
	ExtensionSoft     ExtensionKind = "soft"
)

// ExtensionStatus estado de un ramal.
type ExtensionStatus string

const (
	ExtensionActive   ExtensionStatus = "active"
	ExtensionInactive ExtensionStatus = "inactive"
)

// Extension representa un ramal fijo (físico) o softphone.
// PhysicalLocation es obligatorio si Kind es physical; ContactEmail si Kind es soft.
type Extension struct {
	ID               int64
	Number           string
	Kind             ExtensionKind
	PhysicalLocation string
	ContactEmail     string
	SectorID         int64
	Status           ExtensionStatus
	MonthlyCost      decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive indica si el ramal está en servicio y es facturable.
func (e *Extension) IsActive() bool {
	return e.Status == ExtensionActive
}

// Valid reporta si el tipo es conocido.
func (k ExtensionKind) Valid() bool {
	return k == ExtensionPhysical || k == ExtensionSoft
}

// Valid reporta si el estado es conocido.
func (s ExtensionStatus) Valid() bool {
	return s == ExtensionActive || s == ExtensionInactive
}
