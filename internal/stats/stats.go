// Package stats aggregates metrics over many levels and measures how closely
// generated levels hit their requested parameters.
package stats

import (
	"math"
	"sort"

	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

// Size components are reported under these keys.
const (
	KeyMapSizeRows = metrics.KeyMapSize + ".rows"
	KeyMapSizeCols = metrics.KeyMapSize + ".cols"
)

// Stat is the population mean and standard deviation of N samples.
type Stat struct {
	Mean float64 `yaml:"mean" json:"mean"`
	Std  float64 `yaml:"std" json:"std"`
	N    int     `yaml:"n" json:"n"`
}

// Summary maps a metric key to its Stat. For playability, Mean is the rate
// of playable levels.
type Summary map[string]Stat

// Keys returns the summary's keys in sorted order.
func (s Summary) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// samples accumulates values per key.
type samples map[string][]float64

func (s samples) add(key string, v float64) {
	s[key] = append(s[key], v)
}

func (s samples) summary() Summary {
	out := make(Summary, len(s))
	for key, vs := range s {
		out[key] = describe(vs)
	}
	return out
}

// describe computes the population mean and standard deviation.
//
// Precondition: len(vs) > 0.
func describe(vs []float64) Stat {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	mean := sum / float64(len(vs))
	var sq float64
	for _, v := range vs {
		d := v - mean
		sq += d * d
	}
	return Stat{Mean: mean, Std: math.Sqrt(sq / float64(len(vs))), N: len(vs)}
}

// Summarize computes a Stat for every metric over the valid results. A metric
// undefined for a level is left out of that metric's samples. map_size is
// summarized as map_size.rows and map_size.cols.
//
// Postcondition: A key is present iff at least one valid result defines it.
func Summarize(results []metrics.Result) Summary {
	s := samples{}
	for _, r := range results {
		if !r.Valid() {
			continue
		}
		r.Each(func(key string, value any) {
			switch v := value.(type) {
			case float64:
				s.add(key, v)
			case int:
				s.add(key, float64(v))
			case bool:
				if v {
					s.add(key, 1)
				} else {
					s.add(key, 0)
				}
			case metrics.Size:
				s.add(KeyMapSizeRows, float64(v.Rows))
				s.add(KeyMapSizeCols, float64(v.Cols))
			}
		})
	}
	return s.summary()
}
