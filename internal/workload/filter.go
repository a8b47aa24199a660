// Package workload aggregates workload records into the views shown on the
// dashboard. Everything here is pure and synchronous.
package workload

import (
	"strings"

	"github.com/spec-kit/faculty-workload/internal/domain"
)

// All is the wildcard value for the department and data type criteria.
const All = "All"

// Criteria selects which records a view shows.
type Criteria struct {
	Department string `json:"department" yaml:"department"`
	DataType   string `json:"data_type" yaml:"data_type"`
	SearchTerm string `json:"search" yaml:"search"`
}

// DefaultCriteria matches every record.
func DefaultCriteria() Criteria {
	return Criteria{Department: All, DataType: All}
}

// Normalize maps empty department and data type values to the wildcard.
func (c Criteria) Normalize() Criteria {
	if c.Department == "" {
		c.Department = All
	}
	if c.DataType == "" {
		c.DataType = All
	}
	return c
}

// Matches reports whether rec satisfies every condition of c. Missing record
// fields are empty strings and never match a concrete value.
func Matches(rec domain.WorkloadRecord, c Criteria) bool {
	if c.Department != All && rec.Department != c.Department {
		return false
	}
	if c.DataType != All && string(rec.DataType) != c.DataType {
		return false
	}
	if c.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(c.SearchTerm)
	return strings.Contains(strings.ToLower(rec.Faculty), term) ||
		strings.Contains(strings.ToLower(rec.Subject), term)
}

// Filter returns the records matching c, preserving order.
func Filter(records []domain.WorkloadRecord, c Criteria) []domain.WorkloadRecord {
	out := make([]domain.WorkloadRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

// Departments lists the distinct departments in first-seen order.
func Departments(records []domain.WorkloadRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.Department]; ok {
			continue
		}
		seen[rec.Department] = struct{}{}
		out = append(out, rec.Department)
	}
	return out
}
