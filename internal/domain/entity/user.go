package entity

import (
	"slices"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleFinance = "finance"
	RoleSector  = "sector"
)

// User representa un usuario del sistema. Solo los usuarios con rol sector tienen SectorIDs.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash
	DisplayName  string
	Role         string
	SectorIDs    []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reporta si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleFinance || role == RoleSector
}

// CanAccessSector indica si el usuario puede consultar o aprobar facturas del sector.
// Admin y finance ven todos los sectores.
func (u *User) CanAccessSector(sectorID int64) bool {
	if u.Role == RoleAdmin || u.Role == RoleFinance {
		return true
	}
	return slices.Contains(u.SectorIDs, sectorID)
}
