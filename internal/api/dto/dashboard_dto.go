package dto

import (
	"time"

	"github.com/spec-kit/faculty-workload/internal/dashboard"
	"github.com/spec-kit/faculty-workload/internal/workload"
)

// LoadMeta describes the load a view was computed from.
type LoadMeta struct {
	Generation  uint64            `json:"generation"`
	Loading     bool              `json:"loading"`
	Error       string            `json:"error,omitempty"`
	LoadedAt    *time.Time        `json:"loaded_at,omitempty"`
	Filters     workload.Criteria `json:"filters"`
	Departments []string          `json:"departments"`
}

// MetaFromPage builds the meta block for a page.
func MetaFromPage(p dashboard.Page) LoadMeta {
	return newLoadMeta(p.Generation, p.Loading, p.Error, p.LoadedAt, p.View.Criteria, p.Departments)
}

// MetaFromLoad builds the meta block for a bare load state with default filters.
func MetaFromLoad(l dashboard.LoadState) LoadMeta {
	return newLoadMeta(l.Generation, l.Loading || l.LoadedAt.IsZero(), l.Error, l.LoadedAt,
		workload.DefaultCriteria(), workload.Departments(l.Records))
}

func newLoadMeta(gen uint64, loading bool, errText string, loadedAt time.Time, filters workload.Criteria, departments []string) LoadMeta {
	meta := LoadMeta{
		Generation:  gen,
		Loading:     loading,
		Error:       errText,
		Filters:     filters,
		Departments: departments,
	}
	if !loadedAt.IsZero() {
		utc := loadedAt.UTC()
		meta.LoadedAt = &utc
	}
	return meta
}

// ChartResponse mirrors a bar chart definition.
type ChartResponse struct {
	Title    string         `json:"title"`
	NoData   bool           `json:"no_data"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ChartDataset is one series of bars.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"background_color"`
	BorderWidth     int       `json:"border_width"`
}

// NewChartResponse converts a series for chart rendering.
func NewChartResponse(series workload.ChartSeries) ChartResponse {
	resp := ChartResponse{
		Title:  workload.ChartTitle,
		NoData: series.Empty,
		Labels: []string{},
	}
	if series.Empty {
		resp.Datasets = []ChartDataset{}
		return resp
	}
	resp.Labels = series.Labels
	resp.Datasets = []ChartDataset{{
		Label:           workload.DatasetLabel,
		Data:            series.Totals,
		BackgroundColor: series.Colors,
		BorderWidth:     1,
	}}
	for _, label := range series.StatusConflicts {
		resp.Warnings = append(resp.Warnings, "mixed statuses for "+label+"; showing the last one")
	}
	return resp
}
