package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"licensee-matcher/core/dataset"
	"licensee-matcher/core/normalize"
	"licensee-matcher/core/reconcile"
	"licensee-matcher/core/table"
	"licensee-matcher/core/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by Runs when no database is configured.
var ErrHistoryDisabled = errors.New("run history is disabled")

// Output describes one written result set.
type Output struct {
	Track   string `json:"track"`
	Key     string `json:"key"`
	Object  string `json:"object"`
	Tier    int    `json:"tier"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// Report summarises a run. Failures maps a track, tier or dataset to the
// reason it produced no output; the run itself still succeeded.
type Report struct {
	RunID    string            `json:"run_id"`
	Outputs  []Output          `json:"outputs"`
	Failures map[string]string `json:"failures,omitempty"`
}

func (r *Report) fail(key string, err error) {
	if r.Failures == nil {
		r.Failures = make(map[string]string)
	}
	r.Failures[key] = err.Error()
}

// DatasetCount is the record count of one dataset.
type DatasetCount struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// CountReport lists record counts under a prefix.
type CountReport struct {
	Prefix   string            `json:"prefix"`
	Datasets []DatasetCount    `json:"datasets"`
	Failures map[string]string `json:"failures,omitempty"`
}

// Service runs the matching pipeline against a dataset store.
type Service struct {
	store   dataset.Store
	reports *dataset.Cache
	cfg     Config
	logger  *zap.Logger
	history *History
}

// NewService creates a matching service. history may be nil.
func NewService(store dataset.Store, cfg Config, logger *zap.Logger, history *History) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		reports: dataset.NewCache(store, time.Duration(cfg.ReportCacheSeconds)*time.Second),
		cfg:     cfg,
		logger:  logger,
		history: history,
	}
}

// Tracks returns the certificate and individual tracks with their configured prefixes.
func (s *Service) Tracks() (cert, inv reconcile.Track) {
	return reconcile.CertificateTrack(s.cfg.CertificatePrefix), reconcile.IndividualTrack(s.cfg.IndividualPrefix)
}

// Match loads and normalizes both licensing datasets and the report, runs the
// certificate and individual tracks, and writes every tier result.
//
// The run fails only when the report cannot be loaded or neither licensing
// dataset can be prepared. Failed tiers, tracks and writes are listed in the
// returned report.
func (s *Service) Match(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	l := s.logger.With(zap.String("run_id", report.RunID))
	cert, inv := s.Tracks()

	inputs, failures := tasks.Run(ctx, s.cfg.Workers, []tasks.Task[*table.Table]{
		{Key: s.cfg.ReportName, Run: func(ctx context.Context) (*table.Table, error) {
			t, err := s.reports.Load(ctx, s.cfg.ReportName)
			if err != nil {
				return nil, err
			}
			return normalize.EnsureFields(t), nil
		}},
		{Key: cert.Name, Run: s.prepare(s.cfg.CertificateName)},
		{Key: inv.Name, Run: s.prepare(s.cfg.IndividualName)},
	})

	if err, ok := failures[s.cfg.ReportName]; ok {
		return nil, fmt.Errorf("load report %s: %w", s.cfg.ReportName, err)
	}
	if _, ok := inputs[cert.Name]; !ok {
		if _, ok := inputs[inv.Name]; !ok {
			return nil, fmt.Errorf("prepare licensing datasets: %w", failures.Err())
		}
	}

	authority := inputs[s.cfg.ReportName]
	var batches table.Source
	if s.cfg.ChunkSize > 0 {
		batches = table.Chunked(authority, s.cfg.ChunkSize)
	}
	l.Info("Inputs prepared", zap.Int("report_rows", authority.Len()), zap.Int("chunk_size", s.cfg.ChunkSize))

	agg := reconcile.NewAggregator(reconcile.DefaultMerges, l)
	var results []*reconcile.Results
	for _, track := range []reconcile.Track{cert, inv} {
		source, ok := inputs[track.Name]
		if !ok {
			l.Error("Track skipped", zap.String("track", track.Name), zap.Error(failures[track.Name]))
			report.fail(track.Name, failures[track.Name])
			continue
		}

		res, err := agg.Run(track, reconcile.Inputs{Source: source, Report: authority, ReportBatches: batches})
		if err != nil {
			report.fail(track.Name, err)
		}
		l.Info("Track matched", zap.String("track", track.Name), zap.Int("source_rows", source.Len()), zap.Int("results", len(res.Keys)))
		results = append(results, res)
	}

	s.write(ctx, l, report, results...)
	s.record(ctx, l, report)
	return report, nil
}

// RefreshReport drops the cached report so the next run reads it again.
func (s *Service) RefreshReport() {
	s.reports.Invalidate(s.cfg.ReportName)
}

// prepare loads a licensing dataset and normalizes it.
func (s *Service) prepare(name string) func(context.Context) (*table.Table, error) {
	return func(ctx context.Context) (*table.Table, error) {
		t, err := dataset.Load(ctx, s.store, name)
		if err != nil {
			return nil, err
		}
		return normalize.Preprocess(t), nil
	}
}

// Combine stacks the stored individual and certificate results tier by tier
// and writes the combined result sets.
func (s *Service) Combine(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	l := s.logger.With(zap.String("run_id", report.RunID))
	cert, inv := s.Tracks()

	var fetch []tasks.Task[*table.Table]
	for _, track := range []reconcile.Track{inv, cert} {
		for i, tier := range track.Tiers {
			name := reconcile.Object(track.Prefix, reconcile.ResultKey(i, tier))
			fetch = append(fetch, tasks.Task[*table.Table]{Key: name, Run: func(ctx context.Context) (*table.Table, error) {
				return dataset.Load(ctx, s.store, name)
			}})
		}
	}
	loaded, failures := tasks.Run(ctx, s.cfg.Workers, fetch)
	for _, key := range failures.Keys() {
		l.Warn("Result unavailable", zap.String("key", key), zap.Error(failures[key]))
		report.fail(key, failures[key])
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("no results to combine: %w", failures.Err())
	}

	individual := make([]*table.Table, len(inv.Tiers))
	certificate := make([]*table.Table, len(cert.Tiers))
	for i := range inv.Tiers {
		individual[i] = loaded[reconcile.Object(inv.Prefix, reconcile.ResultKey(i, inv.Tiers[i]))]
		certificate[i] = loaded[reconcile.Object(cert.Prefix, reconcile.ResultKey(i, cert.Tiers[i]))]
	}

	combined, err := reconcile.Combine(reconcile.CombinedTrack(s.cfg.CombinedPrefix), individual, certificate)
	if combined == nil {
		return nil, err
	}
	if err != nil {
		report.fail(combined.Track.Name, err)
	}

	s.write(ctx, l, report, combined)
	s.record(ctx, l, report)
	return report, nil
}

// write stores every result set with the canonical header order.
func (s *Service) write(ctx context.Context, l *zap.Logger, report *Report, results ...*reconcile.Results) {
	var writes []tasks.Task[Output]
	for _, res := range results {
		for _, key := range res.Keys {
			t := res.Tables[key].Reorder(normalize.OutputHeader)
			out := Output{
				Track:   res.Track.Name,
				Key:     key,
				Object:  reconcile.Object(res.Track.Prefix, key),
				Tier:    res.Tiers[key],
				Rows:    t.Len(),
				Columns: t.Width(),
			}
			writes = append(writes, tasks.Task[Output]{Key: out.Object, Run: func(ctx context.Context) (Output, error) {
				return out, dataset.Save(ctx, s.store, out.Object, t)
			}})
		}
	}

	written, failures := tasks.Run(ctx, s.cfg.Workers, writes)
	for _, key := range failures.Keys() {
		l.Error("Result not written", zap.String("key", key), zap.Error(failures[key]))
		report.fail(key, failures[key])
	}
	for _, out := range written {
		l.Debug("Result written", zap.String("key", out.Object), zap.Int("rows", out.Rows))
		report.Outputs = append(report.Outputs, out)
	}
	sort.Slice(report.Outputs, func(i, j int) bool {
		a, b := report.Outputs[i], report.Outputs[j]
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Tier < b.Tier
	})
	l.Info("Results written", zap.Int("written", len(written)), zap.Int("failed", len(failures)), zap.Int("planned", len(writes)))
}

func (s *Service) record(ctx context.Context, l *zap.Logger, report *Report) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(ctx, report.RunID, report.Outputs); err != nil {
		l.Warn("Run history not recorded", zap.Error(err))
	}
}

// Count reports the record count of every .csv dataset under prefix.
func (s *Service) Count(ctx context.Context, prefix string) (*CountReport, error) {
	names, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var counts []tasks.Task[int]
	for _, name := range names {
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		counts = append(counts, tasks.Task[int]{Key: name, Run: func(ctx context.Context) (int, error) {
			return dataset.Count(ctx, s.store, name)
		}})
	}

	results, failures := tasks.Run(ctx, s.cfg.Workers, counts)
	report := &CountReport{Prefix: prefix, Datasets: make([]DatasetCount, 0, len(results))}
	for name, n := range results {
		report.Datasets = append(report.Datasets, DatasetCount{Name: name, Records: n})
	}
	sort.Slice(report.Datasets, func(i, j int) bool { return report.Datasets[i].Name < report.Datasets[j].Name })
	for _, key := range failures.Keys() {
		if report.Failures == nil {
			report.Failures = make(map[string]string)
		}
		report.Failures[key] = failures[key].Error()
	}
	return report, nil
}

// Runs returns the latest recorded outputs.
func (s *Service) Runs(ctx context.Context, limit int) ([]MatchRun, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Latest(ctx, limit)
}
