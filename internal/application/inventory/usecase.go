// Package inventory contiene los casos de uso de administración del inventario
// telefónico: sectores, ramales y chips, y la vista de activos de un sector.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	domaininv "github.com/jhoicas/ephone-api/internal/domain/inventory"
	"github.com/jhoicas/ephone-api/internal/domain/repository"
)

// UseCase CRUD de sectores, ramales y chips. No existe borrado: un activo se retira
// cambiando su estado, y así deja de sumar al costo del sector.
type UseCase struct {
	sectorRepo    repository.SectorRepository
	extensionRepo repository.ExtensionRepository
	simCardRepo   repository.SimCardRepository
	log           zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sectorRepo repository.SectorRepository,
	extensionRepo repository.ExtensionRepository,
	simCardRepo repository.SimCardRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		sectorRepo:    sectorRepo,
		extensionRepo: extensionRepo,
		simCardRepo:   simCardRepo,
		log:           log,
	}
}

// ── Sectores ──────────────────────────────────────────────────────────────────

// CreateSector crea un sector.
func (uc *UseCase) CreateSector(ctx context.Context, in dto.SectorRequest) (*dto.SectorResponse, error) {
	sector := &entity.Sector{
		Name:           strings.TrimSpace(in.Name),
		TaxID:          strings.TrimSpace(in.TaxID),
		CostCenterCode: strings.TrimSpace(in.CostCenterCode),
	}
	if err := domaininv.ValidateSector(sector); err != nil {
		return nil, err
	}
	if err := uc.sectorRepo.Create(ctx, sector); err != nil {
		return nil, fmt.Errorf("crear sector: %w", err)
	}
	uc.log.Info().Int64("sector_id", sector.ID).Str("name", sector.Name).Msg("sector creado")
	return toSectorResponse(sector), nil
}

// UpdateSector edita un sector. Renombrar no afecta a sus activos: la relación es por ID.
func (uc *UseCase) UpdateSector(ctx context.Context, id int64, in dto.SectorRequest) (*dto.SectorResponse, error) {
	sector, err := uc.getSector(ctx, id)
	if err != nil {
		return nil, err
	}
	sector.Name = strings.TrimSpace(in.Name)
	sector.TaxID = strings.TrimSpace(in.TaxID)
	sector.CostCenterCode = strings.TrimSpace(in.CostCenterCode)
	if err := domaininv.ValidateSector(sector); err != nil {
		return nil, err
	}
	if err := uc.sectorRepo.Update(ctx, sector); err != nil {
		return nil, fmt.Errorf("actualizar sector: %w", err)
	}
	return toSectorResponse(sector), nil
}

// GetSector obtiene un sector. domain.ErrNotFound si no existe.
func (uc *UseCase) GetSector(ctx context.Context, id int64) (*dto.SectorResponse, error) {
	sector, err := uc.getSector(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSectorResponse(sector), nil
}

// ListSectors lista sectores; q filtra por nombre, CNPJ o centro de resultado.
func (uc *UseCase) ListSectors(ctx context.Context, q string) ([]dto.SectorResponse, error) {
	sectors, err := uc.sectorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar sectores: %w", err)
	}
	out := make([]dto.SectorResponse, 0, len(sectors))
	for _, s := range sectors {
		if q != "" && !containsFold(q, s.Name, s.TaxID, s.CostCenterCode) {
			continue
		}
		out = append(out, *toSectorResponse(s))
	}
	return out, nil
}

// ── Ramales ───────────────────────────────────────────────────────────────────

// CreateExtension crea un ramal asociado a un sector existente.
func (uc *UseCase) CreateExtension(ctx context.Context, in dto.ExtensionRequest) (*dto.ExtensionResponse, error) {
	ext := &entity.Extension{}
	applyExtension(ext, in)
	sector, err := uc.validateExtension(ctx, ext)
	if err != nil {
		return nil, err
	}
	if err := uc.extensionRepo.Create(ctx, ext); err != nil {
		return nil, fmt.Errorf("crear ramal: %w", err)
	}
	uc.log.Info().Int64("extension_id", ext.ID).Int64("sector_id", ext.SectorID).Msg("ramal creado")
	return toExtensionResponse(ext, sector.Name), nil
}

// UpdateExtension reemplaza los datos de un ramal.
func (uc *UseCase) UpdateExtension(ctx context.Context, id int64, in dto.ExtensionRequest) (*dto.ExtensionResponse, error) {
	ext, err := uc.extensionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener ramal: %w", err)
	}
	if ext == nil {
		return nil, domain.ErrNotFound
	}
	applyExtension(ext, in)
	sector, err := uc.validateExtension(ctx, ext)
	if err != nil {
		return nil, err
	}
	if err := uc.extensionRepo.Update(ctx, ext); err != nil {
		return nil, fmt.Errorf("actualizar ramal: %w", err)
	}
	return toExtensionResponse(ext, sector.Name), nil
}

// GetExtension obtiene un ramal.
func (uc *UseCase) GetExtension(ctx context.Context, id int64) (*dto.ExtensionResponse, error) {
	ext, err := uc.extensionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener ramal: %w", err)
	}
	if ext == nil {
		return nil, domain.ErrNotFound
	}
	names, err := uc.sectorNames(ctx)
	if err != nil {
		return nil, err
	}
	return toExtensionResponse(ext, names[ext.SectorID]), nil
}

// ListExtensions lista ramales; q busca (sin distinguir mayúsculas) en el número y en el nombre del sector.
func (uc *UseCase) ListExtensions(ctx context.Context, q string) ([]dto.ExtensionResponse, error) {
	exts, err := uc.extensionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ramales: %w", err)
	}
	names, err := uc.sectorNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExtensionResponse, 0, len(exts))
	for _, e := range exts {
		if q != "" && !containsFold(q, e.Number, names[e.SectorID]) {
			continue
		}
		out = append(out, *toExtensionResponse(e, names[e.SectorID]))
	}
	return out, nil
}

// ── Chips ─────────────────────────────────────────────────────────────────────

// CreateSimCard crea un chip asociado a un sector existente.
func (uc *UseCase) CreateSimCard(ctx context.Context, in dto.SimCardRequest) (*dto.SimCardResponse, error) {
	sim := &entity.SimCard{}
	applySimCard(sim, in)
	sector, err := uc.validateSimCard(ctx, sim)
	if err != nil {
		return nil, err
	}
	if err := uc.simCardRepo.Create(ctx, sim); err != nil {
		return nil, fmt.Errorf("crear chip: %w", err)
	}
	uc.log.Info().Int64("sim_card_id", sim.ID).Int64("sector_id", sim.SectorID).Msg("chip creado")
	return toSimCardResponse(sim, sector.Name), nil
}

// UpdateSimCard reemplaza los datos de un chip.
func (uc *UseCase) UpdateSimCard(ctx context.Context, id int64, in dto.SimCardRequest) (*dto.SimCardResponse, error) {
	sim, err := uc.simCardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener chip: %w", err)
	}
	if sim == nil {
		return nil, domain.ErrNotFound
	}
	applySimCard(sim, in)
	sector, err := uc.validateSimCard(ctx, sim)
	if err != nil {
		return nil, err
	}
	if err := uc.simCardRepo.Update(ctx, sim); err != nil {
		return nil, fmt.Errorf("actualizar chip: %w", err)
	}
	return toSimCardResponse(sim, sector.Name), nil
}

// GetSimCard obtiene un chip.
func (uc *UseCase) GetSimCard(ctx context.Context, id int64) (*dto.SimCardResponse, error) {
	sim, err := uc.simCardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener chip: %w", err)
	}
	if sim == nil {
		return nil, domain.ErrNotFound
	}
	names, err := uc.sectorNames(ctx)
	if err != nil {
		return nil, err
	}
	return toSimCardResponse(sim, names[sim.SectorID]), nil
}

// ListSimCards lista chips; q busca en número, operadora y nombre del sector.
func (uc *UseCase) ListSimCards(ctx context.Context, q string) ([]dto.SimCardResponse, error) {
	sims, err := uc.simCardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar chips: %w", err)
	}
	names, err := uc.sectorNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SimCardResponse, 0, len(sims))
	for _, s := range sims {
		if q != "" && !containsFold(q, s.Number, s.Carrier, names[s.SectorID]) {
			continue
		}
		out = append(out, *toSimCardResponse(s, names[s.SectorID]))
	}
	return out, nil
}

// ── Vista del sector ──────────────────────────────────────────────────────────

// SectorAssets devuelve todos los ramales y chips del sector (activos o no); q filtra por número.
func (uc *UseCase) SectorAssets(ctx context.Context, sectorID int64, q string) (*dto.SectorAssetsResponse, error) {
	sector, err := uc.getSector(ctx, sectorID)
	if err != nil {
		return nil, err
	}
	exts, err := uc.extensionRepo.ListBySector(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("listar ramales: %w", err)
	}
	sims, err := uc.simCardRepo.ListBySector(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("listar chips: %w", err)
	}
	out := &dto.SectorAssetsResponse{
		Sector:     *toSectorResponse(sector),
		Extensions: make([]dto.ExtensionResponse, 0, len(exts)),
		SimCards:   make([]dto.SimCardResponse, 0, len(sims)),
	}
	for _, e := range exts {
		if q == "" || containsFold(q, e.Number) {
			out.Extensions = append(out.Extensions, *toExtensionResponse(e, sector.Name))
		}
	}
	for _, s := range sims {
		if q == "" || containsFold(q, s.Number) {
			out.SimCards = append(out.SimCards, *toSimCardResponse(s, sector.Name))
		}
	}
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *UseCase) getSector(ctx context.Context, id int64) (*entity.Sector, error) {
	sector, err := uc.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener sector: %w", err)
	}
	if sector == nil {
		return nil, domain.ErrNotFound
	}
	return sector, nil
}

func (uc *UseCase) sectorNames(ctx context.Context) (map[int64]string, error) {
	sectors, err := uc.sectorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar sectores: %w", err)
	}
	names := make(map[int64]string, len(sectors))
	for _, s := range sectors {
		names[s.ID] = s.Name
	}
	return names, nil
}

// ownerSector resuelve el sector dueño; un sector inexistente es un error de validación.
func (uc *UseCase) ownerSector(ctx context.Context, sectorID int64) (*entity.Sector, error) {
	sector, err := uc.sectorRepo.GetByID(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("obtener sector: %w", err)
	}
	if sector == nil {
		return nil, domain.NewValidationError("sector_id", "sector inexistente")
	}
	return sector, nil
}

func (uc *UseCase) validateExtension(ctx context.Context, ext *entity.Extension) (*entity.Sector, error) {
	domaininv.NormalizeExtension(ext)
	if err := domaininv.ValidateExtension(ext); err != nil {
		return nil, err
	}
	return uc.ownerSector(ctx, ext.SectorID)
}

func (uc *UseCase) validateSimCard(ctx context.Context, sim *entity.SimCard) (*entity.Sector, error) {
	sim.Number = strings.TrimSpace(sim.Number)
	if err := domaininv.ValidateSimCard(sim); err != nil {
		return nil, err
	}
	return uc.ownerSector(ctx, sim.SectorID)
}

func applyExtension(ext *entity.Extension, in dto.ExtensionRequest) {
	ext.Number = in.Number
	ext.Kind = entity.ExtensionKind(in.Kind)
	ext.PhysicalLocation = strings.TrimSpace(in.PhysicalLocation)
	ext.ContactEmail = strings.TrimSpace(in.ContactEmail)
	ext.SectorID = in.SectorID
	ext.Status = entity.ExtensionStatus(in.Status)
	ext.MonthlyCost = in.MonthlyCost
}

func applySimCard(sim *entity.SimCard, in dto.SimCardRequest) {
	sim.Number = in.Number
	sim.Carrier = strings.TrimSpace(in.Carrier)
	sim.SectorID = in.SectorID
	sim.Status = entity.SimCardStatus(in.Status)
	sim.MonthlyCost = in.MonthlyCost
}

func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func toSectorResponse(s *entity.Sector) *dto.SectorResponse {
	return &dto.SectorResponse{
		ID:             s.ID,
		Name:           s.Name,
		TaxID:          s.TaxID,
		CostCenterCode: s.CostCenterCode,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toExtensionResponse(e *entity.Extension, sectorName string) *dto.ExtensionResponse {
	return &dto.ExtensionResponse{
		ID:               e.ID,
		Number:           e.Number,
		Kind:             string(e.Kind),
		PhysicalLocation: e.PhysicalLocation,
		ContactEmail:     e.ContactEmail,
		SectorID:         e.SectorID,
		SectorName:       sectorName,
		Status:           string(e.Status),
		MonthlyCost:      e.MonthlyCost,
	}
}

func toSimCardResponse(s *entity.SimCard, sectorName string) *dto.SimCardResponse {
	return &dto.SimCardResponse{
		ID:          s.ID,
		Number:      s.Number,
		Carrier:     s.Carrier,
		SectorID:    s.SectorID,
		SectorName:  sectorName,
		Status:      string(s.Status),
		MonthlyCost: s.MonthlyCost,
	}
}
