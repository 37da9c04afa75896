package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Ciclo de vida de facturas.
	ErrAlreadyApproved    = errors.New("la factura del período ya fue aprobada")
	ErrDuplicatePeriod    = errors.New("ya existe una factura para el sector en ese período")
	ErrLedgerInconsistent = errors.New("el libro de facturas tiene más de una factura para el mismo período")
)

// ValidationError describe un campo inválido o faltante en la entrada de un activo o sector.
// Envuelve ErrInvalidInput para que errors.Is(err, ErrInvalidInput) siga funcionando.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
