package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spec-kit/faculty-workload/internal/client"
	"github.com/spec-kit/faculty-workload/internal/dashboard"
)

func newOverviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show faculty, department and status totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := opts.load(cmd.Context(), dashboard.TabOverview)
			if err != nil {
				return err
			}
			if opts.output != outputTable {
				return encode(opts.out, opts.output, page.Overview)
			}
			return renderOverview(opts.out, page.Overview)
		},
	}
}

func newHeatmapCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Show per-department averages and intensity tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := opts.load(cmd.Context(), dashboard.TabHeatmap)
			if err != nil {
				return err
			}
			if opts.output != outputTable {
				return encode(opts.out, opts.output, page.Heatmap)
			}
			return renderHeatmap(opts.out, page.Heatmap)
		},
	}
}

func newChartCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show total workload per faculty member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := opts.load(cmd.Context(), dashboard.TabWorkload)
			if err != nil {
				return err
			}
			if opts.output != outputTable {
				return encode(opts.out, opts.output, page.Chart)
			}
			return renderChart(opts.out, page.Chart)
		},
	}
}

func newTableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "List workload records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, page, err := opts.load(cmd.Context(), dashboard.TabFacultyDetail)
			if err != nil {
				return err
			}
			if opts.output != outputTable {
				return encode(opts.out, opts.output, page.Records)
			}
			return renderTable(opts.out, page.Records)
		},
	}
}

func newInsightsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show the workload summary and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			insights, err := opts.service().Insights(cmd.Context())
			if err != nil {
				return fmt.Errorf("load insights: %s", client.Message(err))
			}
			if opts.output != outputTable {
				return encode(opts.out, opts.output, insights)
			}
			return renderInsights(opts.out, insights)
		},
	}
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the workload API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := opts.service().UpstreamHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("workload api unhealthy: %s", client.Message(err))
			}
			if opts.output != outputTable {
				return encode(opts.out, opts.output, payload)
			}
			_, err = fmt.Fprintf(opts.out, "workload api at %s is up\n", opts.apiURL)
			return err
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the PDF report for the filtered records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, page, err := opts.load(cmd.Context(), dashboard.TabReports)
			if err != nil {
				return err
			}
			result, err := svc.Export(cmd.Context(), page.View.Criteria)
			if err != nil {
				return fmt.Errorf("export report: %s", client.Message(err))
			}
			path := filepath.Join(dir, result.FileName)
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			_, err = fmt.Fprintf(opts.out, "wrote %s (%d records)\n", path, result.Records)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to save the report in")
	return cmd
}
