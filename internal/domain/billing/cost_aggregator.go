// Package billing contiene los servicios de dominio puros de facturación:
// agregación del costo mensual de un sector y reconstrucción de sus líneas.
// No tienen estado ni efectos secundarios; son seguros para uso concurrente.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// LineItemType tipo de activo de una línea de factura.
type LineItemType string

const (
	LineItemExtension LineItemType = "extension"
	LineItemSimCard   LineItemType = "sim_card"
)

// LineItem línea de detalle de una factura: un activo activo del sector.
type LineItem struct {
	Type        LineItemType
	AssetID     int64
	Number      string
	MonthlyCost decimal.Decimal
}

// ComputeSectorMonthlyCost suma MonthlyCost de los ramales y chips activos del sector.
// Sin activos activos devuelve cero. Cada registro coincidente cuenta una vez, sin deduplicar.
func ComputeSectorMonthlyCost(sector *entity.Sector, extensions []*entity.Extension, simCards []*entity.SimCard) decimal.Decimal {
	total := decimal.Zero
	if sector == nil {
		return total
	}
	for _, e := range extensions {
		if chargeableExtension(sector, e) {
			total = total.Add(e.MonthlyCost)
		}
	}
	for _, s := range simCards {
		if chargeableSimCard(sector, s) {
			total = total.Add(s.MonthlyCost)
		}
	}
	return total
}

// ActiveLineItems devuelve las líneas facturables del sector: primero ramales, luego chips,
// en el orden recibido. Usa el mismo filtro que ComputeSectorMonthlyCost, por lo que la suma
// de las líneas siempre coincide con el total.
func ActiveLineItems(sector *entity.Sector, extensions []*entity.Extension, simCards []*entity.SimCard) []LineItem {
	items := make([]LineItem, 0)
	if sector == nil {
		return items
	}
	for _, e := range extensions {
		if chargeableExtension(sector, e) {
			items = append(items, LineItem{Type: LineItemExtension, AssetID: e.ID, Number: e.Number, MonthlyCost: e.MonthlyCost})
		}
	}
	for _, s := range simCards {
		if chargeableSimCard(sector, s) {
			items = append(items, LineItem{Type: LineItemSimCard, AssetID: s.ID, Number: s.Number, MonthlyCost: s.MonthlyCost})
		}
	}
	return items
}

// SumLineItems suma el costo mensual de las líneas.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.MonthlyCost)
	}
	return total
}

func chargeableExtension(sector *entity.Sector, e *entity.Extension) bool {
	return e != nil && e.SectorID == sector.ID && e.IsActive()
}

func chargeableSimCard(sector *entity.Sector, s *entity.SimCard) bool {
	return s != nil && s.SectorID == sector.ID && s.IsActive()
}
