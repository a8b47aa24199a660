package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/faculty-workload/internal/client"
	"github.com/spec-kit/faculty-workload/internal/dashboard"
	"github.com/spec-kit/faculty-workload/internal/domain"
	"github.com/spec-kit/faculty-workload/internal/events"
	"github.com/spec-kit/faculty-workload/internal/workload"
	apperrors "github.com/spec-kit/faculty-workload/pkg/util/errorutil"
)

// WorkloadAPI is the remote API the dashboard reads from.
type WorkloadAPI interface {
	FetchWorkload(ctx context.Context) ([]domain.WorkloadRecord, error)
	FetchInsights(ctx context.Context) (*domain.Insights, error)
	CheckHealth(ctx context.Context) (map[string]any, error)
	ExportPDF(ctx context.Context, records []domain.WorkloadRecord) ([]byte, error)
}

// DashboardService coordinates loads, views and exports.
type DashboardService struct {
	api        WorkloadAPI
	store      *dashboard.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// DashboardDependencies bundles collaborators for the dashboard service.
type DashboardDependencies struct {
	API        WorkloadAPI
	Store      *dashboard.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// ExportResult is a rendered report ready for download.
type ExportResult struct {
	FileName string
	Data     []byte
	Records  int
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	svc := &DashboardService{
		api:        deps.API,
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if svc.store == nil {
		svc.store = dashboard.NewStore(nil)
	}
	if svc.dispatcher == nil {
		svc.dispatcher = events.NewInMemoryDispatcher()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Refresh reloads workload records. Failures end up in the returned state's
// Error field rather than as an error.
func (s *DashboardService) Refresh(ctx context.Context) dashboard.LoadState {
	gen, err := s.store.Begin(ctx)
	if err != nil {
		s.logger.Error("unable to start workload load", zap.Error(err))
		snap := s.store.Snapshot()
		snap.Error = "Unable to start loading: " + err.Error()
		return snap
	}

	records, err := s.api.FetchWorkload(ctx)
	if err != nil {
		msg := client.Message(err)
		if s.store.Fail(gen, msg) {
			s.publish(ctx, events.New(events.EventWorkloadLoadFailed, gen, events.WorkloadLoadFailedPayload{Message: msg}))
		} else {
			s.publish(ctx, events.New(events.EventLoadSuperseded, gen, nil))
		}
		return s.store.Snapshot()
	}

	if !s.store.Commit(gen, records) {
		s.publish(ctx, events.New(events.EventLoadSuperseded, gen, nil))
		return s.store.Snapshot()
	}

	s.publish(ctx, events.New(events.EventWorkloadLoaded, gen, events.WorkloadLoadedPayload{
		Records:         len(records),
		Departments:     len(workload.Departments(records)),
		StatusConflicts: workload.BuildChart(records).StatusConflicts,
		UnknownStatus:   countUnknownStatus(records),
	}))
	return s.store.Snapshot()
}

// Insights fetches the textual recommendations.
func (s *DashboardService) Insights(ctx context.Context) (*domain.Insights, error) {
	insights, err := s.api.FetchInsights(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventInsightsLoaded, 0, events.InsightsLoadedPayload{
		Recommendations: len(insights.Recommendations),
	}))
	return insights, nil
}

// RefreshAll reloads workload records and insights concurrently. The
// insights failure, if any, is returned as display text.
//
// The group is a fan-out join only: each half records its own failure in its
// result and returns nil, so one failing fetch never cancels the other.
func (s *DashboardService) RefreshAll(ctx context.Context) (dashboard.LoadState, *domain.Insights, string) {
	var (
		g        errgroup.Group
		load     dashboard.LoadState
		insights *domain.Insights
		errText  string
	)
	g.Go(func() error {
		load = s.Refresh(ctx)
		return nil
	})
	g.Go(func() error {
		got, err := s.Insights(ctx)
		if err != nil {
			errText = client.Message(err)
			return nil
		}
		insights = got
		return nil
	})
	g.Wait() //nolint:errcheck // both halves always return nil
	return load, insights, errText
}

// Snapshot returns the current load state.
func (s *DashboardService) Snapshot() dashboard.LoadState {
	return s.store.Snapshot()
}

// Page derives the view for the current load. Insights are fetched only for
// the recommendations tab.
func (s *DashboardService) Page(ctx context.Context, view dashboard.ViewState) dashboard.Page {
	page := dashboard.Build(view, s.store.Snapshot())
	if view.Tab != dashboard.TabRecommendations {
		return page
	}
	insights, err := s.Insights(ctx)
	if err != nil {
		page.InsightsError = client.Message(err)
		return page
	}
	page.Insights = insights
	return page
}

// Export renders the records matching criteria as a PDF report.
func (s *DashboardService) Export(ctx context.Context, criteria workload.Criteria) (*ExportResult, error) {
	snap := s.store.Snapshot()
	if snap.LoadedAt.IsZero() {
		return nil, apperrors.NewValidationError("workload data has not been loaded yet", nil)
	}
	if snap.Error != "" {
		return nil, apperrors.NewValidationError("workload data unavailable: "+snap.Error, nil)
	}

	records := workload.Filter(snap.Records, criteria.Normalize())
	data, err := s.api.ExportPDF(ctx, records)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		FileName: client.ReportFileName(s.now()),
		Data:     data,
		Records:  len(records),
	}
	s.publish(ctx, events.New(events.EventReportExported, snap.Generation, events.ReportExportedPayload{
		FileName: result.FileName,
		Records:  result.Records,
		Bytes:    len(data),
	}))
	return result, nil
}

// UpstreamHealth proxies the workload API liveness check.
func (s *DashboardService) UpstreamHealth(ctx context.Context) (map[string]any, error) {
	return s.api.CheckHealth(ctx)
}

func (s *DashboardService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func countUnknownStatus(records []domain.WorkloadRecord) int {
	n := 0
	for _, r := range records {
		if !r.Status.Known() {
			n++
		}
	}
	return n
}
