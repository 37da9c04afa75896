package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ephone-api/internal/application/billing"
	"github.com/jhoicas/ephone-api/internal/application/dto"
)

// InvoiceHandler ciclo de vida de la factura mensual de un sector.
// Todas las rutas pasan antes por RequireSectorAccess.
type InvoiceHandler struct {
	lifecycle *billing.LifecycleUseCase
	reporting *billing.ReportingUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(lifecycle *billing.LifecycleUseCase, reporting *billing.ReportingUseCase) *InvoiceHandler {
	return &InvoiceHandler{lifecycle: lifecycle, reporting: reporting}
}

// Current godoc
// @Summary      Estado del período vigente
// @Description  Pendiente: monto = costo vivo del inventario. Aprobado: monto = total congelado.
// @Tags         invoices
// @Produce      json
// @Param        id  path  int  true  "sector"
// @Success      200  {object}  dto.PeriodStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id}/invoices/current [get]
func (h *InvoiceHandler) Current(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.lifecycle.CurrentStatus(c.UserContext(), sectorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApproveCurrent godoc
// @Summary      Aprobar el período vigente
// @Tags         invoices
// @Produce      json
// @Param        id  path  int  true  "sector"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id}/invoices/current/approve [post]
func (h *InvoiceHandler) ApproveCurrent(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.lifecycle.ApproveCurrent(c.UserContext(), sectorID, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar un período explícito
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "sector"
// @Param        body  body  dto.ApproveInvoiceRequest   true  "mes y año"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id}/invoices/approve [post]
func (h *InvoiceHandler) Approve(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ApproveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.lifecycle.Approve(c.UserContext(), billing.ApproveCommand{
		SectorID:   sectorID,
		Month:      in.Month,
		Year:       in.Year,
		ApprovedBy: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History GET /api/sectors/:id/invoices
func (h *InvoiceHandler) History(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.lifecycle.History(c.UserContext(), sectorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PeriodStatus GET /api/sectors/:id/invoices/:year/:month
func (h *InvoiceHandler) PeriodStatus(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	month, year, err := periodParams(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.lifecycle.PeriodStatus(c.UserContext(), sectorID, month, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Detalle de ítems de un período aprobado
// @Description  Reconstruido desde el inventario actual; vacío si el período no está aprobado.
// @Tags         invoices
// @Produce      json
// @Param        id     path  int  true  "sector"
// @Param        year   path  int  true  "año"
// @Param        month  path  int  true  "mes"
// @Success      200  {array}  dto.LineItemResponse
// @Router       /api/sectors/{id}/invoices/{year}/{month}/items [get]
func (h *InvoiceHandler) Items(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	month, year, err := periodParams(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reporting.SectorDetail(c.UserContext(), sectorID, month, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/sectors/:id/invoices/:year/:month/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	sectorID, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	month, year, err := periodParams(c)
	if err != nil {
		return writeError(c, err)
	}
	body, filename, err := h.reporting.InvoiceStatementPDF(c.UserContext(), sectorID, month, year)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(body)
}
