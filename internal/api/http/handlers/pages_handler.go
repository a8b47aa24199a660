package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/dashboard"
	"github.com/spec-kit/faculty-workload/internal/service"
	"github.com/spec-kit/faculty-workload/internal/workload"
	apperrors "github.com/spec-kit/faculty-workload/pkg/util/errorutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"avg": func(v *float64) string {
		if v == nil {
			return "No data"
		}
		return strconv.FormatFloat(*v, 'f', 2, 64)
	},
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"pct": func(part, whole float64) float64 {
		if whole <= 0 {
			return 0
		}
		return part / whole * 100
	},
}).ParseFS(templateFS, "templates/dashboard.html"))

// PagesHandler renders the HTML dashboard.
type PagesHandler struct {
	service *service.DashboardService
	logger  *zap.Logger
}

// NewPagesHandler constructs handler.
func NewPagesHandler(dashboardService *service.DashboardService, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{service: dashboardService, logger: logger}
}

type pageData struct {
	dashboard.Page
	Menu      []dashboard.MenuItem
	DataTypes []string
	All       string
	Query     template.URL
	MaxTotal  float64
}

// Dashboard GET /.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	view := viewFromQuery(c, dashboard.Tab(c.Query("tab")))
	page := h.service.Page(c.UserContext(), view)

	data := pageData{
		Page:      page,
		Menu:      dashboard.Menu,
		DataTypes: []string{"Demo", "Real"},
		All:       workload.All,
		Query:     template.URL(filterQuery(view.Criteria)),
	}
	for _, total := range page.Chart.Totals {
		if total > data.MaxTotal {
			data.MaxTotal = total
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render dashboard", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Refresh POST /refresh reloads data and returns to the dashboard.
func (h *PagesHandler) Refresh(c *fiber.Ctx) error {
	h.service.Refresh(c.UserContext())
	target := "/"
	if raw := string(c.Request().URI().QueryString()); raw != "" {
		target += "?" + raw
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

func filterQuery(criteria workload.Criteria) string {
	v := url.Values{}
	if criteria.Department != workload.All {
		v.Set("department", criteria.Department)
	}
	if criteria.DataType != workload.All {
		v.Set("data_type", criteria.DataType)
	}
	if criteria.SearchTerm != "" {
		v.Set("search", criteria.SearchTerm)
	}
	return v.Encode()
}
