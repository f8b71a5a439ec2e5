package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/SakshamC12/fliprinventory/internal/application/analytics"
	"github.com/SakshamC12/fliprinventory/internal/application/dto"
)

// ReportHandler expone los reportes del inventario.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Overview godoc
// @Summary      Resumen del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Router       /api/reports/overview [get]
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MovementSeries godoc
// @Summary      Entradas y salidas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD); por defecto hace 30 días"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD); por defecto hoy"
// @Success      200  {object}  dto.MovementSeriesDTO
// @Router       /api/reports/movements [get]
func (h *ReportHandler) MovementSeries(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.MovementSeries(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopMovers godoc
// @Summary      Productos con más salidas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit  query  int     false  "Cantidad de productos"  default(10)
// @Success      200  {array}  dto.TopMoverDTO
// @Router       /api/reports/top-movers [get]
func (h *ReportHandler) TopMovers(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.TopMovers(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
