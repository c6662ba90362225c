package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/reports"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// nowLocal reloj de los handlers; los tests lo reemplazan.
var nowLocal = time.Now

// ReportHandler indicadores y reportes de ventas (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReportHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.StatisticsToday(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReportHandler) Month(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyRevenue(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Period ventas de ?from=&to= con totales. Sin fechas: hoy.
func (h *ReportHandler) Period(c *fiber.Ctx) error {
	today := nowLocal()
	from, to, err := dateRange(c, today, today)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SalesByPeriod(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByProduct ranking de productos por cantidad vendida. Sin fechas: últimos 30 días.
func (h *ReportHandler) ByProduct(c *fiber.Ctx) error {
	today := nowLocal()
	from, to, err := dateRange(c, today.AddDate(0, 0, -29), today)
	if err != nil {
		return respondError(c, err)
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 0 {
			return respondError(c, domain.Invalid("limit inválido"))
		}
	}
	out, err := h.uc.ByProduct(c.UserContext(), from, to, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByCategory ventas agrupadas por categoría. Sin fechas: últimos 30 días.
func (h *ReportHandler) ByCategory(c *fiber.Ctx) error {
	today := nowLocal()
	from, to, err := dateRange(c, today.AddDate(0, 0, -29), today)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ByCategory(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Daily serie diaria de ingresos. Sin fechas: últimos 7 días.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	today := nowLocal()
	from, to, err := dateRange(c, today.AddDate(0, 0, -6), today)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.DailyRevenue(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
