package entity

import "time"

// DefaultClosingDay día de cierre por defecto de las facturas.
const DefaultClosingDay = 25

// Settings configuración general editable por el administrador.
// ClosingDay se almacena pero el período vigente sigue siendo el mes calendario del reloj.
type Settings struct {
	ClosingDay int
	UpdatedAt  time.Time
}
