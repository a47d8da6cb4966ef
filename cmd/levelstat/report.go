package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/levelmetrics/internal/batch"
	"github.com/cory-johannsen/levelmetrics/internal/metrics"
	"github.com/cory-johannsen/levelmetrics/internal/stats"
)

// report is the YAML document levelstat prints.
type report struct {
	Levels   []batch.Outcome `yaml:"levels"`
	Accepted *int            `yaml:"accepted,omitempty"`
	Summary  stats.Summary   `yaml:"summary,omitempty"`
	Targets  stats.Summary   `yaml:"targets,omitempty"`
}

// buildReport assembles the printed document. The summary covers every
// analyzed level; target comparison covers levels whose name has a target.
func buildReport(outcomes []batch.Outcome, summarize bool, targets map[string]stats.Target) report {
	r := report{Levels: outcomes}
	if summarize {
		results := make([]metrics.Result, len(outcomes))
		accepted := 0
		for i, o := range outcomes {
			results[i] = o.Result
			if o.Verdict == nil || o.Verdict.Accepted {
				accepted++
			}
		}
		r.Summary = stats.Summarize(results)
		r.Accepted = &accepted
	}
	if len(targets) > 0 {
		var pairs []stats.Pair
		for _, o := range outcomes {
			if t, ok := targets[o.Name]; ok {
				pairs = append(pairs, stats.Pair{Target: t, Measured: o.Result})
			}
		}
		r.Targets = stats.CompareTargets(pairs)
	}
	return r
}

func writeReport(w io.Writer, r report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
