// Package batch analyzes many levels concurrently with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/levelmetrics/internal/filter"
	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 4

// Level is one level's text and identity.
type Level struct {
	// ID uniquely identifies the level within a batch. Empty IDs are assigned
	// a UUID by Runner.Run.
	ID   string
	Name string
	Text string
}

// Outcome is the analysis of one Level.
type Outcome struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name,omitempty" json:"name,omitempty"`
	Result  metrics.Result  `yaml:"metrics" json:"metrics"`
	Verdict *filter.Verdict `yaml:"verdict,omitempty" json:"verdict,omitempty"`
}

// Runner fans levels out to an Analyzer and an optional Filter.
type Runner struct {
	analyzer *metrics.Analyzer
	filter   *filter.Filter
	workers  int
	logger   *zap.Logger
}

// NewRunner creates a Runner.
//
// Precondition: analyzer and logger must be non-nil.
// Postcondition: f may be nil, in which case Outcomes carry no Verdict;
// workers <= 0 is replaced by DefaultWorkers.
func NewRunner(analyzer *metrics.Analyzer, f *filter.Filter, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{analyzer: analyzer, filter: f, workers: workers, logger: logger}
}

// Run analyzes every level with at most the configured number running at once.
//
// Postcondition: On success the i-th Outcome belongs to levels[i]. When ctx is
// cancelled, dispatch stops and ctx's error is returned with no Outcomes.
func (r *Runner) Run(ctx context.Context, levels []Level) ([]Outcome, error) {
	out := make([]Outcome, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, lv := range levels {
		i, lv := i, lv
		if gctx.Err() != nil {
			break
		}
		if lv.ID == "" {
			lv.ID = uuid.New().String()
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.run(lv)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.logger.Info("batch analyzed",
		zap.Int("levels", len(levels)),
		zap.Int("workers", r.workers),
	)
	return out, nil
}

func (r *Runner) run(lv Level) Outcome {
	res := r.analyzer.Analyze(lv.Text)
	o := Outcome{ID: lv.ID, Name: lv.Name, Result: res}
	if r.filter != nil {
		v := r.filter.Check(lv.Text, res)
		o.Verdict = &v
		if !v.Accepted {
			r.logger.Debug("level rejected",
				zap.String("id", lv.ID),
				zap.String("name", lv.Name),
				zap.Strings("reasons", v.Reasons),
			)
		}
	}
	return o
}

// ReadFiles loads each path as one Level named after the path.
//
// Postcondition: Returns Levels in path order with IDs assigned, or the first
// read error.
func ReadFiles(paths []string) ([]Level, error) {
	levels := make([]Level, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading level %q: %w", p, err)
		}
		levels = append(levels, Level{
			ID:   uuid.New().String(),
			Name: filepath.Base(p),
			Text: string(data),
		})
	}
	return levels, nil
}
