package workload

import (
	"fmt"

	"github.com/spec-kit/faculty-workload/internal/domain"
)

// ChartTitle labels the per-faculty bar chart and its dataset.
const (
	ChartTitle   = "Faculty Workload Distribution"
	DatasetLabel = "Total Workload Score"
)

// Bar colors keyed by status.
const (
	ColorOverloaded    = "#ff6b6b"
	ColorUnderutilized = "#51cf66"
	ColorBalanced      = "#ffd43b"
	ColorUnknown       = "#868e96"
)

// StatusColor picks the bar color for a status.
func StatusColor(status domain.Status) string {
	switch status {
	case domain.StatusOverloaded:
		return ColorOverloaded
	case domain.StatusUnderutilized:
		return ColorUnderutilized
	case domain.StatusBalanced:
		return ColorBalanced
	default:
		return ColorUnknown
	}
}

// RowColor picks the faculty table row tint for a status.
func RowColor(status domain.Status) string {
	switch status {
	case domain.StatusOverloaded:
		return "#ffcdd2"
	case domain.StatusUnderutilized:
		return "#c8e6c9"
	case domain.StatusBalanced:
		return "#fff9c4"
	default:
		return "#ffffff"
	}
}

// ChartSeries holds the parallel arrays for the per-faculty bar chart.
type ChartSeries struct {
	// Empty marks the no-data state; the arrays are then nil.
	Empty    bool            `json:"empty" yaml:"empty"`
	Labels   []string        `json:"labels" yaml:"labels"`
	Totals   []float64       `json:"totals" yaml:"totals"`
	Statuses []domain.Status `json:"statuses" yaml:"statuses"`
	Colors   []string        `json:"colors" yaml:"colors"`
	// StatusConflicts lists labels whose records disagreed on status.
	StatusConflicts []string `json:"status_conflicts,omitempty" yaml:"status_conflicts,omitempty"`
}

type chartKey struct {
	faculty    string
	department string
}

type chartAcc struct {
	label    string
	total    float64
	status   domain.Status
	conflict bool
}

// ChartLabel formats the bar label for a faculty member.
func ChartLabel(faculty, department string) string {
	return fmt.Sprintf("%s (%s)", faculty, department)
}

// BuildChart sums workload per faculty and department. The status carried for
// a bar is the last one seen in a single left-to-right pass.
func BuildChart(records []domain.WorkloadRecord) ChartSeries {
	if len(records) == 0 {
		return ChartSeries{Empty: true}
	}

	order := make([]chartKey, 0)
	groups := make(map[chartKey]*chartAcc)
	for _, rec := range records {
		key := chartKey{faculty: rec.Faculty, department: rec.Department}
		acc, ok := groups[key]
		if !ok {
			acc = &chartAcc{label: ChartLabel(rec.Faculty, rec.Department), status: rec.Status}
			groups[key] = acc
			order = append(order, key)
		} else if acc.status != rec.Status {
			acc.conflict = true
		}
		acc.total += rec.WorkloadScore
		acc.status = rec.Status
	}

	series := ChartSeries{
		Labels:   make([]string, 0, len(order)),
		Totals:   make([]float64, 0, len(order)),
		Statuses: make([]domain.Status, 0, len(order)),
		Colors:   make([]string, 0, len(order)),
	}
	for _, key := range order {
		acc := groups[key]
		series.Labels = append(series.Labels, acc.label)
		series.Totals = append(series.Totals, acc.total)
		series.Statuses = append(series.Statuses, acc.status)
		series.Colors = append(series.Colors, StatusColor(acc.status))
		if acc.conflict {
			series.StatusConflicts = append(series.StatusConflicts, acc.label)
		}
	}
	return series
}
