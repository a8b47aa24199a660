package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/faculty-workload/internal/api/dto"
	"github.com/spec-kit/faculty-workload/internal/dashboard"
	"github.com/spec-kit/faculty-workload/internal/service"
)

// DashboardHandler serves the dashboard views as JSON.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Overview GET /dashboard/overview.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	page := h.service.Page(c.UserContext(), viewFromQuery(c, dashboard.TabOverview))
	return c.JSON(fiber.Map{"data": page.Overview, "meta": dto.MetaFromPage(page)})
}

// Heatmap GET /dashboard/heatmap.
func (h *DashboardHandler) Heatmap(c *fiber.Ctx) error {
	page := h.service.Page(c.UserContext(), viewFromQuery(c, dashboard.TabHeatmap))
	return c.JSON(fiber.Map{"data": page.Heatmap, "meta": dto.MetaFromPage(page)})
}

// Chart GET /dashboard/chart.
func (h *DashboardHandler) Chart(c *fiber.Ctx) error {
	page := h.service.Page(c.UserContext(), viewFromQuery(c, dashboard.TabWorkload))
	return c.JSON(fiber.Map{"data": dto.NewChartResponse(page.Chart), "meta": dto.MetaFromPage(page)})
}

// Table GET /dashboard/table.
func (h *DashboardHandler) Table(c *fiber.Ctx) error {
	page := h.service.Page(c.UserContext(), viewFromQuery(c, dashboard.TabFacultyDetail))
	return c.JSON(fiber.Map{"data": page.Rows, "meta": dto.MetaFromPage(page)})
}

// Insights GET /dashboard/insights.
func (h *DashboardHandler) Insights(c *fiber.Ctx) error {
	insights, err := h.service.Insights(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": insights})
}

// Refresh POST /dashboard/refresh.
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	state := h.service.Refresh(c.UserContext())
	return c.JSON(fiber.Map{
		"data": fiber.Map{"records": len(state.Records)},
		"meta": dto.MetaFromLoad(state),
	})
}

// Export GET /dashboard/export streams the PDF report of the filtered records.
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	view := viewFromQuery(c, dashboard.TabReports)
	result, err := h.service.Export(c.UserContext(), view.Criteria)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	c.Set("X-Report-Records", strconv.Itoa(result.Records))
	return c.Send(result.Data)
}

// viewFromQuery turns the filter query parameters into view intents applied
// to the default view.
func viewFromQuery(c *fiber.Ctx, tab dashboard.Tab) dashboard.ViewState {
	return dashboard.Reduce(dashboard.DefaultView(),
		dashboard.SelectTab{Tab: tab},
		dashboard.SelectDepartment{Department: c.Query("department")},
		dashboard.SelectDataType{DataType: c.Query("data_type")},
		dashboard.Search{Term: c.Query("search")},
	)
}
