package domain

// Status classifies a record's workload pressure. It is assigned upstream and
// only tallied here.
type Status string

const (
	StatusOverloaded    Status = "Overloaded"
	StatusBalanced      Status = "Balanced"
	StatusUnderutilized Status = "Underutilized"
)

// Known reports whether s is one of the three recognised statuses.
func (s Status) Known() bool {
	switch s {
	case StatusOverloaded, StatusBalanced, StatusUnderutilized:
		return true
	}
	return false
}

// DataType distinguishes demo rows from real sheet rows.
type DataType string

const (
	DataTypeDemo DataType = "Demo"
	DataTypeReal DataType = "Real"
)

// WorkloadRecord is one (faculty, subject) teaching assignment as served by
// the workload API.
type WorkloadRecord struct {
	Faculty       string   `json:"faculty" yaml:"faculty"`
	Department    string   `json:"department" yaml:"department"`
	Subject       string   `json:"subject" yaml:"subject"`
	DataType      DataType `json:"data_type" yaml:"data_type"`
	Year          string   `json:"year,omitempty" yaml:"year,omitempty"`
	Section       string   `json:"section,omitempty" yaml:"section,omitempty"`
	TeachingHours float64  `json:"teaching_hours" yaml:"teaching_hours"`
	LabHours      float64  `json:"lab_hours" yaml:"lab_hours"`
	Evaluation    string   `json:"evaluation,omitempty" yaml:"evaluation,omitempty"`
	WorkloadScore float64  `json:"workload_score" yaml:"workload_score"`
	Status        Status   `json:"status" yaml:"status"`

	FacultyTotalWorkload float64 `json:"faculty_total_workload,omitempty" yaml:"faculty_total_workload,omitempty"`
	DeptAverage          float64 `json:"dept_average,omitempty" yaml:"dept_average,omitempty"`
}

// Insights is the textual recommendation payload.
type Insights struct {
	Summary         string   `json:"summary" yaml:"summary"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}
