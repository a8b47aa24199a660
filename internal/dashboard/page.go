package dashboard

import (
	"time"

	"github.com/spec-kit/faculty-workload/internal/domain"
	"github.com/spec-kit/faculty-workload/internal/workload"
)

// TableRow is one line of the faculty workload table.
type TableRow struct {
	domain.WorkloadRecord
	RowColor string `json:"row_color"`
}

// Page is everything a dashboard render needs, derived from a view and a load
// snapshot.
type Page struct {
	View        ViewState
	Departments []string
	Loading     bool
	Error       string
	Generation  uint64
	LoadedAt    time.Time

	Records  []domain.WorkloadRecord
	Overview workload.GlobalSummary
	Heatmap  []workload.DepartmentSummary
	Chart    workload.ChartSeries
	Rows     []TableRow

	Insights      *domain.Insights
	InsightsError string
}

// HasError reports whether the last load failed.
func (p Page) HasError() bool {
	return p.Error != ""
}

// Build derives a page. The overview and the department list cover the full
// load; heatmap, chart and table are computed over the records matching the
// view's criteria.
func Build(view ViewState, load LoadState) Page {
	filtered := workload.Filter(load.Records, view.Criteria)
	return Page{
		View:        view,
		Departments: workload.Departments(load.Records),
		Loading:     load.Loading || load.LoadedAt.IsZero(),
		Error:       load.Error,
		Generation:  load.Generation,
		LoadedAt:    load.LoadedAt,
		Records:     filtered,
		Overview:    workload.Summarize(load.Records),
		Heatmap:     workload.SummarizeDepartments(filtered),
		Chart:       workload.BuildChart(filtered),
		Rows:        Rows(filtered),
	}
}

// Rows decorates records with their table tint.
func Rows(records []domain.WorkloadRecord) []TableRow {
	rows := make([]TableRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, TableRow{WorkloadRecord: rec, RowColor: workload.RowColor(rec.Status)})
	}
	return rows
}
