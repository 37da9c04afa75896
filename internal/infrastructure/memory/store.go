// Package memory implementa los puertos de persistencia en memoria.
// Es el almacenamiento por defecto (STORAGE_DRIVER=memory) y el doble de prueba de los casos de uso.
// Todas las lecturas devuelven copias: quien llama nunca puede modificar el estado guardado.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

// Store es el inventario en memoria: sectores, ramales, chips, usuarios y configuración.
// Un único RWMutex hace que cada mutación sea atómica respecto al estado que toca.
type Store struct {
	mu sync.RWMutex

	sectors    []*entity.Sector
	extensions []*entity.Extension
	simCards   []*entity.SimCard
	users      []*entity.User
	settings   entity.Settings

	nextSectorID    int64
	nextExtensionID int64
	nextSimCardID   int64
	nextUserID      int64
}

// NewStore crea un inventario vacío con la configuración por defecto.
func NewStore() *Store {
	return &Store{
		settings: entity.Settings{ClosingDay: entity.DefaultClosingDay},
	}
}

// Sectors devuelve el repositorio de sectores respaldado por el store.
func (s *Store) Sectors() *SectorRepo { return &SectorRepo{s: s} }

// Extensions devuelve el repositorio de ramales respaldado por el store.
func (s *Store) Extensions() *ExtensionRepo { return &ExtensionRepo{s: s} }

// SimCards devuelve el repositorio de chips respaldado por el store.
func (s *Store) SimCards() *SimCardRepo { return &SimCardRepo{s: s} }

// Users devuelve el repositorio de usuarios respaldado por el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Settings devuelve el repositorio de configuración respaldado por el store.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s: s} }

func stamp(created *time.Time, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func cloneSector(v *entity.Sector) *entity.Sector {
	c := *v
	return &c
}

func cloneExtension(v *entity.Extension) *entity.Extension {
	c := *v
	return &c
}

func cloneSimCard(v *entity.SimCard) *entity.SimCard {
	c := *v
	return &c
}

func cloneUser(v *entity.User) *entity.User {
	c := *v
	c.SectorIDs = slices.Clone(v.SectorIDs)
	return &c
}
