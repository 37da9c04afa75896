package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ephone-api/internal/application/billing"
	"github.com/jhoicas/ephone-api/internal/domain"
)

// ReportHandler proyecciones para el área financiera.
type ReportHandler struct {
	reporting *billing.ReportingUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reporting *billing.ReportingUseCase) *ReportHandler {
	return &ReportHandler{reporting: reporting}
}

// Summary godoc
// @Summary      Resumen del período
// @Description  Total aprobado y pendiente de todos los sectores.
// @Tags         reports
// @Produce      json
// @Param        month  query  int  true  "mes"
// @Param        year   query  int  true  "año"
// @Success      200  {object}  dto.PeriodSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return writeError(c, domain.NewValidationError("month", "debe ser numérico"))
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return writeError(c, domain.NewValidationError("year", "debe ser numérico"))
	}
	out, err := h.reporting.PeriodSummary(c.UserContext(), month, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApprovedSectors GET /api/reports/approved-sectors
func (h *ReportHandler) ApprovedSectors(c *fiber.Ctx) error {
	out, err := h.reporting.ApprovedSectors(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
