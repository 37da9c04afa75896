package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/ephone-api/internal/application/billing"
	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/infrastructure/pdf"
)

func TestMoney_FormatoBrasileno(t *testing.T) {
	g := pdf.NewMarotoStatementGenerator()
	assert.Equal(t, "R$ 129,90", g.Money(decimal.RequireFromString("129.9")))
	assert.Equal(t, "R$ 1.234,50", g.Money(decimal.RequireFromString("1234.5")))
}

func TestGenerateStatementPDF(t *testing.T) {
	g := pdf.NewMarotoStatementGenerator()
	out, err := g.GenerateStatementPDF(context.Background(), appbilling.StatementData{
		Sector:  &entity.Sector{ID: 3, Name: "Unidade Norte", TaxID: "12.345.678/0001-90", CostCenterCode: "CC-300"},
		Invoice: &entity.Invoice{ID: 1, SectorID: 3, Period: entity.Period{Month: 6, Year: 2024}, Total: decimal.RequireFromString("129.90"), ApprovedAt: time.Now()},
		Items: []domainbilling.LineItem{
			{Type: domainbilling.LineItemExtension, Number: "3001", MonthlyCost: decimal.RequireFromString("50")},
			{Type: domainbilling.LineItemSimCard, Number: "(11) 98888-4444", MonthlyCost: decimal.RequireFromString("79.90")},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStatementPDF_SinFactura(t *testing.T) {
	_, err := pdf.NewMarotoStatementGenerator().GenerateStatementPDF(context.Background(), appbilling.StatementData{})
	assert.Error(t, err)
}
