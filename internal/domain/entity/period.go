package entity

import (
	"fmt"
	"time"
)

// Period identifica un ciclo de facturación (mes, año).
type Period struct {
	Month int
	Year  int
}

// PeriodOf devuelve el período calendario de t.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Valid reporta si el mes está entre 1 y 12 y el año es positivo.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year > 0
}

// After reporta si p es posterior a o (orden por año y luego mes).
func (p Period) After(o Period) bool {
	if p.Year != o.Year {
		return p.Year > o.Year
	}
	return p.Month > o.Month
}

// String formato "M/YYYY", el mismo que usa la interfaz para los selectores de mes.
func (p Period) String() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}
