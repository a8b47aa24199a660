package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/faculty-workload/internal/domain"
	"github.com/spec-kit/faculty-workload/internal/workload"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderOverview(w io.Writer, s workload.GlobalSummary) error {
	avg := "No data"
	if s.AvgWorkload != nil {
		avg = strconv.FormatFloat(*s.AvgWorkload, 'f', 2, 64)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Faculty\t%d\n", s.TotalFaculty)
	fmt.Fprintf(tw, "Departments\t%d\n", s.TotalDepartments)
	fmt.Fprintf(tw, "Total Subjects\t%d\n", s.TotalSubjects)
	fmt.Fprintf(tw, "Avg Workload\t%s\n", avg)
	fmt.Fprintf(tw, "Overloaded\t%d\n", s.Overloaded)
	fmt.Fprintf(tw, "Balanced\t%d\n", s.Balanced)
	fmt.Fprintf(tw, "Underutilized\t%d\n", s.Underutilized)
	return tw.Flush()
}

func renderHeatmap(w io.Writer, depts []workload.DepartmentSummary) error {
	if len(depts) == 0 {
		_, err := fmt.Fprintln(w, "No departments match the current filters.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPARTMENT\tFACULTY\tAVG WORKLOAD\tTIER\tOVERLOADED\tBALANCED\tUNDER")
	for _, d := range depts {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\t%d\t%d\t%d\n",
			d.Department, d.FacultyCount, d.AvgWorkload, d.Tier, d.Overloaded, d.Balanced, d.Underutilized)
	}
	return tw.Flush()
}

func renderChart(w io.Writer, series workload.ChartSeries) error {
	if series.Empty {
		_, err := fmt.Fprintln(w, "No data available to display chart.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FACULTY\tTOTAL WORKLOAD\tSTATUS")
	for i, label := range series.Labels {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", label, num(series.Totals[i]), series.Statuses[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, label := range series.StatusConflicts {
		if _, err := fmt.Fprintf(w, "warning: %s has mixed statuses; showing the last one\n", label); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, records []domain.WorkloadRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FACULTY\tDEPARTMENT\tSUBJECT\tTEACHING\tLAB\tSCORE\tSTATUS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Faculty, r.Department, r.Subject, num(r.TeachingHours), num(r.LabHours), num(r.WorkloadScore), r.Status)
	}
	return tw.Flush()
}

func renderInsights(w io.Writer, insights *domain.Insights) error {
	fmt.Fprintf(w, "Summary\n  %s\n\nRecommendations\n", insights.Summary)
	if len(insights.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, "  - No recommendations available")
		return err
	}
	for _, rec := range insights.Recommendations {
		if _, err := fmt.Fprintf(w, "  - %s\n", rec); err != nil {
			return err
		}
	}
	return nil
}
