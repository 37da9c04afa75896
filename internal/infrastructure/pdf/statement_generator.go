// Package pdf genera el extracto en PDF de una factura aprobada de un sector.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sector + CNPJ        │  Período + N° de factura     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CENTRO DE RESULTADO / aprobación                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Número | Costo mensual                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL APROBADO                                              │
//	│  Nota: las líneas se reconstruyen del inventario actual      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/ephone-api/internal/application/billing"
	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ appbilling.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa billing.StatementPDFGenerator usando Maroto v2.
// Los valores se formatean en reales (pt-BR).
type MarotoStatementGenerator struct {
	printer *message.Printer
}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator {
	return &MarotoStatementGenerator{printer: message.NewPrinter(language.BrazilianPortuguese)}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(_ context.Context, data appbilling.StatementData) ([]byte, error) {
	if data.Sector == nil || data.Invoice == nil {
		return nil, fmt.Errorf("pdf: sector y factura son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fatura "+data.Invoice.Period.String(), true).
		WithAuthor(data.Sector.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Sector, data.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(approvalRow(data.Sector, data.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(data.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(data.Invoice))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// Money formatea un valor como "R$ 1.234,50".
func (g *MarotoStatementGenerator) Money(v decimal.Decimal) string {
	return g.printer.Sprintf("R$ %.2f", v.Round(2).InexactFloat64())
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: sector + CNPJ (izq) y período + número de factura (der).
func headerRow(sector *entity.Sector, inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sector.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(sector.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FATURA DE TELEFONIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%02d/%d", inv.Period.Month, inv.Period.Year), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("N° %06d", inv.ID), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// approvalRow: centro de resultado y fecha de aprobación.
func approvalRow(sector *entity.Sector, inv *entity.Invoice) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CENTRO DE RESULTADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Aprovada em %s",
				nonEmpty(sector.CostCenterCode, "—"),
				inv.ApprovedAt.Format("02/01/2006 15:04"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 3, align.Left),
		h("Número", 6, align.Left),
		h("Custo mensal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por activo.
func (g *MarotoStatementGenerator) tableDetailRows(items []domainbilling.LineItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sem ativos ativos no inventário atual.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(7).Add(
			col.New(3).Add(text.New(itemLabel(it.Type), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(it.Number, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(g.Money(it.MonthlyCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalRow: total congelado en la aprobación.
func (g *MarotoStatementGenerator) totalRow(inv *entity.Invoice) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL APROVADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.Money(inv.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"O total corresponde ao valor congelado na aprovação. "+
				"As linhas refletem o inventário ativo no momento da emissão deste documento.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func itemLabel(t domainbilling.LineItemType) string {
	switch t {
	case domainbilling.LineItemExtension:
		return "Ramal"
	case domainbilling.LineItemSimCard:
		return "Chip"
	}
	return string(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
