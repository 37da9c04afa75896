// Package seed carga el conjunto de datos de demostración: tres sectores,
// cuatro ramales, cuatro chips y cuatro usuarios (uno por rol, más un usuario multisector).
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

// DemoPassword contraseña de todos los usuarios de demostración.
const DemoPassword = "123456"

// Target repositorios donde se escriben los datos.
type Target struct {
	Sectors    repository.SectorRepository
	Extensions repository.ExtensionRepository
	SimCards   repository.SimCardRepository
	Users      repository.UserRepository
	Settings   repository.SettingsRepository // opcional
}

// Demo carga los datos si no hay sectores. Devuelve false si ya había datos.
func Demo(ctx context.Context, t Target) (bool, error) {
	existing, err := t.Sectors.List(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: listar sectores: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	sectors := []*entity.Sector{
		{Name: "Escola Matriz", TaxID: "11.111.111/0001-11", CostCenterCode: "CR100"},
		{Name: "Unidade Centro", TaxID: "22.222.222/0001-22", CostCenterCode: "CR200"},
		{Name: "Unidade Norte", TaxID: "33.333.333/0001-33", CostCenterCode: "CR300"},
	}
	for _, s := range sectors {
		if err := t.Sectors.Create(ctx, s); err != nil {
			return false, fmt.Errorf("seed: sector %s: %w", s.Name, err)
		}
	}
	matriz, centro, norte := sectors[0].ID, sectors[1].ID, sectors[2].ID

	exts := []*entity.Extension{
		{Number: "1001", Kind: entity.ExtensionPhysical, PhysicalLocation: "Recepção", SectorID: matriz, Status: entity.ExtensionActive, MonthlyCost: money("50.00")},
		{Number: "1002", Kind: entity.ExtensionSoft, ContactEmail: "carlos@escola.com", SectorID: matriz, Status: entity.ExtensionActive, MonthlyCost: money("35.50")},
		{Number: "2001", Kind: entity.ExtensionPhysical, PhysicalLocation: "Secretaria", SectorID: centro, Status: entity.ExtensionInactive, MonthlyCost: money("50.00")},
		{Number: "3001", Kind: entity.ExtensionPhysical, PhysicalLocation: "Diretoria", SectorID: norte, Status: entity.ExtensionActive, MonthlyCost: money("50.00")},
	}
	for _, e := range exts {
		if err := t.Extensions.Create(ctx, e); err != nil {
			return false, fmt.Errorf("seed: ramal %s: %w", e.Number, err)
		}
	}

	sims := []*entity.SimCard{
		{Number: "(11) 98888-1111", Carrier: "Vivo", SectorID: matriz, Status: entity.SimCardActive, MonthlyCost: money("79.90")},
		{Number: "(21) 98888-2222", Carrier: "Claro", SectorID: centro, Status: entity.SimCardActive, MonthlyCost: money("65.00")},
		{Number: "(31) 98888-3333", Carrier: "TIM", SectorID: norte, Status: entity.SimCardBlocked, MonthlyCost: money("49.90")},
		{Number: "(11) 98888-4444", Carrier: "Vivo", SectorID: norte, Status: entity.SimCardActive, MonthlyCost: money("79.90")},
	}
	for _, s := range sims {
		if err := t.SimCards.Create(ctx, s); err != nil {
			return false, fmt.Errorf("seed: chip %s: %w", s.Number, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	users := []*entity.User{
		{Email: "admin@ephone.com", DisplayName: "Admin Geral", Role: entity.RoleAdmin},
		{Email: "financeiro@ephone.com", DisplayName: "Joana Silva", Role: entity.RoleFinance},
		{Email: "user@ephone.com", DisplayName: "Carlos Souza", Role: entity.RoleSector, SectorIDs: []int64{matriz}},
		{Email: "multi@ephone.com", DisplayName: "Ana Pereira", Role: entity.RoleSector, SectorIDs: []int64{centro, norte}},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		if err := t.Users.Create(ctx, u); err != nil {
			return false, fmt.Errorf("seed: usuario %s: %w", u.Email, err)
		}
	}

	if t.Settings != nil {
		if err := t.Settings.Save(ctx, &entity.Settings{ClosingDay: entity.DefaultClosingDay}); err != nil {
			return false, fmt.Errorf("seed: configuración: %w", err)
		}
	}
	return true, nil
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }
