// Package inventory contiene las validaciones de dominio de sectores, ramales y chips.
// Son las reglas de entrada de datos: lo que llega aquí inválido nunca se persiste.
package inventory

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// ValidateSector exige nombre, CNPJ y centro de resultado.
func ValidateSector(s *entity.Sector) error {
	if s == nil {
		return domain.NewValidationError("sector", "requerido")
	}
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, domain.NewValidationError("name", "requerido"))
	}
	if strings.TrimSpace(s.TaxID) == "" {
		errs = append(errs, domain.NewValidationError("tax_id", "requerido"))
	}
	if strings.TrimSpace(s.CostCenterCode) == "" {
		errs = append(errs, domain.NewValidationError("cost_center_code", "requerido"))
	}
	return errors.Join(errs...)
}

// ValidateExtension valida un ramal. Un ramal físico necesita ubicación; un softphone necesita email.
func ValidateExtension(e *entity.Extension) error {
	if e == nil {
		return domain.NewValidationError("extension", "requerido")
	}
	var errs []error
	if strings.TrimSpace(e.Number) == "" {
		errs = append(errs, domain.NewValidationError("number", "requerido"))
	}
	switch e.Kind {
	case entity.ExtensionPhysical:
		if strings.TrimSpace(e.PhysicalLocation) == "" {
			errs = append(errs, domain.NewValidationError("physical_location", "requerido para ramal físico"))
		}
	case entity.ExtensionSoft:
		if strings.TrimSpace(e.ContactEmail) == "" {
			errs = append(errs, domain.NewValidationError("contact_email", "requerido para softphone"))
		} else if _, err := mail.ParseAddress(e.ContactEmail); err != nil {
			errs = append(errs, domain.NewValidationError("contact_email", "email inválido"))
		}
	default:
		errs = append(errs, domain.NewValidationError("kind", "debe ser physical o soft"))
	}
	if !e.Status.Valid() {
		errs = append(errs, domain.NewValidationError("status", "debe ser active o inactive"))
	}
	if e.SectorID <= 0 {
		errs = append(errs, domain.NewValidationError("sector_id", "requerido"))
	}
	if err := validateMonthlyCost(e.MonthlyCost); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateSimCard valida un chip.
func ValidateSimCard(s *entity.SimCard) error {
	if s == nil {
		return domain.NewValidationError("sim_card", "requerido")
	}
	var errs []error
	if strings.TrimSpace(s.Number) == "" {
		errs = append(errs, domain.NewValidationError("number", "requerido"))
	}
	if strings.TrimSpace(s.Carrier) == "" {
		errs = append(errs, domain.NewValidationError("carrier", "requerido"))
	}
	if !s.Status.Valid() {
		errs = append(errs, domain.NewValidationError("status", "debe ser active, blocked o cancelled"))
	}
	if s.SectorID <= 0 {
		errs = append(errs, domain.NewValidationError("sector_id", "requerido"))
	}
	if err := validateMonthlyCost(s.MonthlyCost); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateMonthlyCost exige un valor no negativo con a lo sumo dos decimales,
// la misma escala que NUMERIC(12,2) en PostgreSQL.
func validateMonthlyCost(v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError("monthly_cost", "no puede ser negativo")
	}
	if !v.Equal(v.Truncate(2)) {
		return domain.NewValidationError("monthly_cost", "máximo dos decimales")
	}
	return nil
}

// NormalizeExtension limpia los campos que no aplican al tipo de ramal.
func NormalizeExtension(e *entity.Extension) {
	e.Number = strings.TrimSpace(e.Number)
	switch e.Kind {
	case entity.ExtensionPhysical:
		e.ContactEmail = ""
	case entity.ExtensionSoft:
		e.PhysicalLocation = ""
	}
}
