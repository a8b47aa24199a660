package workload

import (
	"math"

	"github.com/spec-kit/faculty-workload/internal/domain"
)

// Tier is the heatmap intensity bucket of a department.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

const (
	highTierFloor   = 15.0
	mediumTierFloor = 10.0
)

// StatusCounts tallies records per known status.
type StatusCounts struct {
	Overloaded    int `json:"overloaded" yaml:"overloaded"`
	Balanced      int `json:"balanced" yaml:"balanced"`
	Underutilized int `json:"underutilized" yaml:"underutilized"`
}

func (s *StatusCounts) add(status domain.Status) {
	switch status {
	case domain.StatusOverloaded:
		s.Overloaded++
	case domain.StatusBalanced:
		s.Balanced++
	case domain.StatusUnderutilized:
		s.Underutilized++
	}
}

// DepartmentSummary is one heatmap cell.
type DepartmentSummary struct {
	Department    string  `json:"department" yaml:"department"`
	FacultyCount  int     `json:"faculty_count" yaml:"faculty_count"`
	TotalWorkload float64 `json:"total_workload" yaml:"total_workload"`
	AvgWorkload   float64 `json:"avg_workload" yaml:"avg_workload"`
	Tier          Tier    `json:"tier" yaml:"tier"`
	StatusCounts  `yaml:",inline"`
}

// ClassifyTier buckets an average workload. Bounds are strict, so exactly 15
// is medium and exactly 10 is low.
func ClassifyTier(avg float64) Tier {
	if avg > highTierFloor {
		return TierHigh
	}
	if avg > mediumTierFloor {
		return TierMedium
	}
	return TierLow
}

type departmentAcc struct {
	total   float64
	faculty map[string]struct{}
	counts  StatusCounts
}

// SummarizeDepartments groups records by department in first-seen order.
// Departments without records in the input never appear.
func SummarizeDepartments(records []domain.WorkloadRecord) []DepartmentSummary {
	order := make([]string, 0)
	groups := make(map[string]*departmentAcc)
	for _, rec := range records {
		acc, ok := groups[rec.Department]
		if !ok {
			acc = &departmentAcc{faculty: make(map[string]struct{})}
			groups[rec.Department] = acc
			order = append(order, rec.Department)
		}
		acc.total += rec.WorkloadScore
		acc.faculty[rec.Faculty] = struct{}{}
		acc.counts.add(rec.Status)
	}

	out := make([]DepartmentSummary, 0, len(order))
	for _, dept := range order {
		acc := groups[dept]
		// every group holds at least one faculty entry
		avg := round2(acc.total / float64(len(acc.faculty)))
		out = append(out, DepartmentSummary{
			Department:    dept,
			FacultyCount:  len(acc.faculty),
			TotalWorkload: acc.total,
			AvgWorkload:   avg,
			Tier:          ClassifyTier(avg),
			StatusCounts:  acc.counts,
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
