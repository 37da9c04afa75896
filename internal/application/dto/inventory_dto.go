package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SectorRequest body para POST/PUT /api/sectors.
type SectorRequest struct {
	Name           string `json:"name"`
	TaxID          string `json:"tax_id"`
	CostCenterCode string `json:"cost_center_code"`
}

// SectorResponse sector en respuestas.
type SectorResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	TaxID          string    `json:"tax_id"`
	CostCenterCode string    `json:"cost_center_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ExtensionRequest body para POST/PUT /api/extensions.
// physical_location es obligatorio para kind=physical; contact_email para kind=soft.
type ExtensionRequest struct {
	Number           string          `json:"number"`
	Kind             string          `json:"kind"` // physical | soft
	PhysicalLocation string          `json:"physical_location,omitempty"`
	ContactEmail     string          `json:"contact_email,omitempty"`
	SectorID         int64           `json:"sector_id"`
	Status           string          `json:"status"` // active | inactive
	MonthlyCost      decimal.Decimal `json:"monthly_cost"`
}

// ExtensionResponse ramal en respuestas; SectorName se resuelve por ID.
type ExtensionResponse struct {
	ID               int64           `json:"id"`
	Number           string          `json:"number"`
	Kind             string          `json:"kind"`
	PhysicalLocation string          `json:"physical_location,omitempty"`
	ContactEmail     string          `json:"contact_email,omitempty"`
	SectorID         int64           `json:"sector_id"`
	SectorName       string          `json:"sector_name"`
	Status           string          `json:"status"`
	MonthlyCost      decimal.Decimal `json:"monthly_cost"`
}

// SimCardRequest body para POST/PUT /api/sim-cards.
type SimCardRequest struct {
	Number      string          `json:"number"`
	Carrier     string          `json:"carrier"`
	SectorID    int64           `json:"sector_id"`
	Status      string          `json:"status"` // active | blocked | cancelled
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// SimCardResponse chip en respuestas.
type SimCardResponse struct {
	ID          int64           `json:"id"`
	Number      string          `json:"number"`
	Carrier     string          `json:"carrier"`
	SectorID    int64           `json:"sector_id"`
	SectorName  string          `json:"sector_name"`
	Status      string          `json:"status"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// SectorAssetsResponse activos de un sector para GET /api/sectors/:id/assets.
type SectorAssetsResponse struct {
	Sector     SectorResponse      `json:"sector"`
	Extensions []ExtensionResponse `json:"extensions"`
	SimCards   []SimCardResponse   `json:"sim_cards"`
}
