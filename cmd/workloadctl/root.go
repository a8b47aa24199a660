package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/faculty-workload/internal/client"
	"github.com/spec-kit/faculty-workload/internal/config"
	"github.com/spec-kit/faculty-workload/internal/dashboard"
	"github.com/spec-kit/faculty-workload/internal/observability"
	"github.com/spec-kit/faculty-workload/internal/service"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	apiURL     string
	department string
	dataType   string
	search     string
	output     string
	timeout    time.Duration
	verbose    bool

	out    io.Writer
	logger *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out, logger: zap.NewNop()}

	defaultURL := "http://localhost:5000/api"
	defaultTimeout := 30 * time.Second
	if cfg, err := config.Load(); err == nil {
		defaultURL = cfg.Upstream.BaseURL
		if t := cfg.Upstream.Timeout(); t > 0 {
			defaultTimeout = t
		}
	}

	root := &cobra.Command{
		Use:           "workloadctl",
		Short:         "Inspect faculty teaching workload from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputTable, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.output)
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logger, err := observability.NewLogger(config.LoggerConfig{Level: level, Encoding: "console", Output: "stderr"})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", defaultURL, "Workload API base URL (or set UPSTREAM_BASE_URL)")
	flags.StringVarP(&opts.department, "department", "d", "All", "Only show this department")
	flags.StringVarP(&opts.dataType, "data-type", "t", "All", "Only show Demo or Real rows")
	flags.StringVarP(&opts.search, "search", "s", "", "Case-insensitive faculty or subject search")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "Output format: table, json or yaml")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Timeout per API call")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newOverviewCmd(opts),
		newHeatmapCmd(opts),
		newChartCmd(opts),
		newTableCmd(opts),
		newInsightsCmd(opts),
		newHealthCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func (o *options) view(tab dashboard.Tab) dashboard.ViewState {
	return dashboard.Reduce(dashboard.DefaultView(),
		dashboard.SelectTab{Tab: tab},
		dashboard.SelectDepartment{Department: o.department},
		dashboard.SelectDataType{DataType: o.dataType},
		dashboard.Search{Term: o.search},
	)
}

func (o *options) service() *service.DashboardService {
	api := client.New(o.apiURL, o.timeout, client.WithLogger(o.logger))
	return service.NewDashboardService(service.DashboardDependencies{
		API:    api,
		Logger: o.logger,
	})
}

// load fetches the workload once and builds the page for tab. A failed load
// is returned as an error because a CLI has no view to show it in.
func (o *options) load(ctx context.Context, tab dashboard.Tab) (*service.DashboardService, dashboard.Page, error) {
	svc := o.service()
	state := svc.Refresh(ctx)
	if state.Error != "" {
		return nil, dashboard.Page{}, fmt.Errorf("load workload: %s", state.Error)
	}
	return svc, dashboard.Build(o.view(tab), state), nil
}
