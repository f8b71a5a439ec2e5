package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/SakshamC12/fliprinventory/internal/application/analytics"
	"github.com/SakshamC12/fliprinventory/internal/domain"
)

// DashboardHandler maneja el resumen del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve KPIs, actividad de la última semana, top 5 de salidas y tamaño de la lista de reposición.
// GET /api/dashboard/summary
//
// No requiere parámetros; las fechas se calculan en el servidor (UTC).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Me devuelve los movimientos registrados por el actor del token.
// GET /api/dashboard/me
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	out, err := h.uc.GetActorActivity(c.Context(), actorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
