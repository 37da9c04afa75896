package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/application/inventory"
)

// InventoryHandler expone sectores, ramales y chips.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListSectors godoc
// @Summary      Listar sectores
// @Tags         sectors
// @Produce      json
// @Param        q  query  string  false  "búsqueda por nombre, CNPJ o centro de resultado"
// @Success      200  {array}  dto.SectorResponse
// @Router       /api/sectors [get]
func (h *InventoryHandler) ListSectors(c *fiber.Ctx) error {
	out, err := h.uc.ListSectors(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSector godoc
// @Summary      Crear sector
// @Tags         sectors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SectorRequest  true  "sector"
// @Success      201   {object}  dto.SectorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sectors [post]
func (h *InventoryHandler) CreateSector(c *fiber.Ctx) error {
	var in dto.SectorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSector(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSector GET /api/sectors/:id
func (h *InventoryHandler) GetSector(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSector(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSector PUT /api/sectors/:id
func (h *InventoryHandler) UpdateSector(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SectorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSector(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SectorAssets godoc
// @Summary      Ramales y chips del sector
// @Tags         sectors
// @Produce      json
// @Param        id  path   int     true   "sector"
// @Param        q   query  string  false  "búsqueda por número"
// @Success      200  {object}  dto.SectorAssetsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id}/assets [get]
func (h *InventoryHandler) SectorAssets(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SectorAssets(c.UserContext(), id, c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListExtensions godoc
// @Summary      Listar ramales
// @Tags         extensions
// @Produce      json
// @Param        q  query  string  false  "número o nombre del sector"
// @Success      200  {array}  dto.ExtensionResponse
// @Router       /api/extensions [get]
func (h *InventoryHandler) ListExtensions(c *fiber.Ctx) error {
	out, err := h.uc.ListExtensions(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateExtension POST /api/extensions
func (h *InventoryHandler) CreateExtension(c *fiber.Ctx) error {
	var in dto.ExtensionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateExtension(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetExtension GET /api/extensions/:id
func (h *InventoryHandler) GetExtension(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetExtension(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateExtension PUT /api/extensions/:id
func (h *InventoryHandler) UpdateExtension(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ExtensionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateExtension(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSimCards GET /api/sim-cards?q=
func (h *InventoryHandler) ListSimCards(c *fiber.Ctx) error {
	out, err := h.uc.ListSimCards(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSimCard POST /api/sim-cards
func (h *InventoryHandler) CreateSimCard(c *fiber.Ctx) error {
	var in dto.SimCardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSimCard(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSimCard GET /api/sim-cards/:id
func (h *InventoryHandler) GetSimCard(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSimCard(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSimCard PUT /api/sim-cards/:id
func (h *InventoryHandler) UpdateSimCard(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SimCardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSimCard(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
