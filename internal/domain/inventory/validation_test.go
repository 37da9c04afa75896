package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/inventory"
)

func validExtension() *entity.Extension {
	return &entity.Extension{
		Number:           "1001",
		Kind:             entity.ExtensionPhysical,
		PhysicalLocation: "Recepção",
		SectorID:         1,
		Status:           entity.ExtensionActive,
		MonthlyCost:      decimal.RequireFromString("50.00"),
	}
}

func TestValidateExtension_FisicoValido(t *testing.T) {
	assert.NoError(t, inventory.ValidateExtension(validExtension()))
}

func TestValidateExtension_FisicoSinUbicacion(t *testing.T) {
	e := validExtension()
	e.PhysicalLocation = "  "

	err := inventory.ValidateExtension(e)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "physical_location", verr.Field)
}

func TestValidateExtension_SoftphoneRequiereEmail(t *testing.T) {
	e := validExtension()
	e.Kind = entity.ExtensionSoft
	e.PhysicalLocation = ""

	err := inventory.ValidateExtension(e)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "contact_email")

	e.ContactEmail = "no-es-email"
	assert.ErrorIs(t, inventory.ValidateExtension(e), domain.ErrInvalidInput)

	e.ContactEmail = "carlos@escola.com"
	assert.NoError(t, inventory.ValidateExtension(e))
}

func TestValidateExtension_AcumulaErrores(t *testing.T) {
	e := &entity.Extension{Kind: "fax", Status: "x", MonthlyCost: decimal.NewFromInt(-1)}

	err := inventory.ValidateExtension(e)
	require.Error(t, err)
	for _, field := range []string{"number", "kind", "status", "sector_id", "monthly_cost"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidateSimCard(t *testing.T) {
	s := &entity.SimCard{
		Number:      "(11) 98888-1111",
		Carrier:     "Vivo",
		SectorID:    1,
		Status:      entity.SimCardBlocked,
		MonthlyCost: decimal.RequireFromString("79.90"),
	}
	assert.NoError(t, inventory.ValidateSimCard(s))

	s.Status = "suspended"
	s.Carrier = ""
	err := inventory.ValidateSimCard(s)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "carrier")
	assert.Contains(t, err.Error(), "status")
}

func TestValidateSector(t *testing.T) {
	assert.NoError(t, inventory.ValidateSector(&entity.Sector{Name: "Escola Matriz", TaxID: "11.111.111/0001-11", CostCenterCode: "CR100"}))

	err := inventory.ValidateSector(&entity.Sector{Name: "Escola Matriz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "tax_id")
	assert.Contains(t, err.Error(), "cost_center_code")
}

func TestNormalizeExtension_LimpiaCamposAjenos(t *testing.T) {
	e := validExtension()
	e.ContactEmail = "x@y.com"
	e.Number = " 1001 "
	inventory.NormalizeExtension(e)
	assert.Empty(t, e.ContactEmail)
	assert.Equal(t, "1001", e.Number)
}

// La escala es la de NUMERIC(12,2): con más decimales memoria y PostgreSQL congelarían totales distintos.
func TestValidateMonthlyCost_MaximoDosDecimales(t *testing.T) {
	e := validExtension()
	e.MonthlyCost = decimal.RequireFromString("10.005")
	err := inventory.ValidateExtension(e)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "monthly_cost")

	e.MonthlyCost = decimal.RequireFromString("10.500")
	assert.NoError(t, inventory.ValidateExtension(e), "ceros a la derecha no cuentan")

	s := &entity.SimCard{
		Number:      "(11) 98888-1111",
		Carrier:     "Vivo",
		SectorID:    1,
		Status:      entity.SimCardActive,
		MonthlyCost: decimal.RequireFromString("0.0049"),
	}
	err = inventory.ValidateSimCard(s)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "monthly_cost")

	s.MonthlyCost = decimal.RequireFromString("79.90")
	assert.NoError(t, inventory.ValidateSimCard(s))
}
