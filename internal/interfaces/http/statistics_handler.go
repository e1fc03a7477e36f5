package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
)

// StatisticsHandler dashboard de estadísticas de nómina.
type StatisticsHandler struct {
	uc *appanalytics.StatisticsUseCase
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc *appanalytics.StatisticsUseCase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// Get devuelve los KPIs del mes en curso.
// GET /api/dashboard/statistics
//
// Respuesta: StatisticsDTO (month_paid, month_discounts, month_advances,
// month_payments, active_employees, pending_advances, top_employees[5], date_label).
// Las fechas se calculan en el servidor.
func (h *StatisticsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.uc.GetStatistics(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
