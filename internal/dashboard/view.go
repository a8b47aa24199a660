// Package dashboard holds the dashboard's state snapshots and the selectors
// that turn them into rendered views.
package dashboard

import (
	"strings"

	"github.com/spec-kit/faculty-workload/internal/workload"
)

// Tab identifies a dashboard section.
type Tab string

const (
	TabOverview        Tab = "overview"
	TabWorkload        Tab = "workload"
	TabHeatmap         Tab = "heatmap"
	TabFacultyDetail   Tab = "faculty-detail"
	TabRecommendations Tab = "recommendations"
	TabReports         Tab = "reports"
)

// MenuItem is one entry of the navigation bar.
type MenuItem struct {
	Tab   Tab
	Label string
}

// Menu lists the navigation entries in display order.
var Menu = []MenuItem{
	{Tab: TabOverview, Label: "Overview Dashboard"},
	{Tab: TabWorkload, Label: "Faculty Workload"},
	{Tab: TabHeatmap, Label: "Department Heatmap"},
	{Tab: TabFacultyDetail, Label: "Faculty Detail"},
	{Tab: TabRecommendations, Label: "AI Recommendations"},
	{Tab: TabReports, Label: "Reports"},
}

// ParseTab maps s to a known tab, falling back to the overview.
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, item := range Menu {
		if item.Tab == t {
			return t
		}
	}
	return TabOverview
}

// ViewState is what the viewer has selected. It is a value; every change
// produces a new snapshot through Reduce.
type ViewState struct {
	Tab      Tab
	Criteria workload.Criteria
}

// DefaultView is the state at mount.
func DefaultView() ViewState {
	return ViewState{Tab: TabOverview, Criteria: workload.DefaultCriteria()}
}

// Intent is a discrete user action on the view.
type Intent interface {
	apply(ViewState) ViewState
}

// SelectTab switches the visible section.
type SelectTab struct{ Tab Tab }

// SelectDepartment narrows to one department, or workload.All.
type SelectDepartment struct{ Department string }

// SelectDataType narrows to Demo or Real rows, or workload.All.
type SelectDataType struct{ DataType string }

// Search sets the faculty/subject search term.
type Search struct{ Term string }

// ResetFilters restores the default criteria and keeps the tab.
type ResetFilters struct{}

func (i SelectTab) apply(s ViewState) ViewState {
	s.Tab = ParseTab(string(i.Tab))
	return s
}

func (i SelectDepartment) apply(s ViewState) ViewState {
	s.Criteria.Department = i.Department
	s.Criteria = s.Criteria.Normalize()
	return s
}

func (i SelectDataType) apply(s ViewState) ViewState {
	s.Criteria.DataType = i.DataType
	s.Criteria = s.Criteria.Normalize()
	return s
}

func (i Search) apply(s ViewState) ViewState {
	s.Criteria.SearchTerm = i.Term
	return s
}

func (ResetFilters) apply(s ViewState) ViewState {
	s.Criteria = workload.DefaultCriteria()
	return s
}

// Reduce applies intents in order and returns the resulting snapshot.
func Reduce(s ViewState, intents ...Intent) ViewState {
	for _, in := range intents {
		if in == nil {
			continue
		}
		s = in.apply(s)
	}
	return s
}
