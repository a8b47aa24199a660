package workload

import "github.com/spec-kit/faculty-workload/internal/domain"

// GlobalSummary backs the overview cards.
type GlobalSummary struct {
	TotalFaculty     int `json:"total_faculty" yaml:"total_faculty"`
	TotalDepartments int `json:"total_departments" yaml:"total_departments"`
	TotalSubjects    int `json:"total_subjects" yaml:"total_subjects"`
	StatusCounts     `yaml:",inline"`
	// AvgWorkload is nil when there are no records.
	AvgWorkload *float64 `json:"avg_workload" yaml:"avg_workload"`
}

// HasData reports whether the summary was built from at least one record.
func (g GlobalSummary) HasData() bool {
	return g.AvgWorkload != nil
}

// Summarize computes overview statistics over records. Statuses other than
// the three known values count toward no bucket.
func Summarize(records []domain.WorkloadRecord) GlobalSummary {
	faculty := make(map[string]struct{})
	departments := make(map[string]struct{})
	var (
		counts StatusCounts
		sum    float64
	)
	for _, rec := range records {
		faculty[rec.Faculty] = struct{}{}
		departments[rec.Department] = struct{}{}
		counts.add(rec.Status)
		sum += rec.WorkloadScore
	}

	summary := GlobalSummary{
		TotalFaculty:     len(faculty),
		TotalDepartments: len(departments),
		TotalSubjects:    len(records),
		StatusCounts:     counts,
	}
	if len(records) > 0 {
		avg := round2(sum / float64(len(records)))
		summary.AvgWorkload = &avg
	}
	return summary
}
