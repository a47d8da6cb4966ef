package metrics

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/levelmetrics/internal/level"
)

// IsPlayable reports whether exit is reachable from entry.
//
// Postcondition: false when entry or exit is nil.
func IsPlayable(entry, exit *level.Position, fromEntry level.DistanceMap) bool {
	if entry == nil || exit == nil {
		return false
	}
	return fromEntry.Contains(*exit)
}

// ExplorationRequirement is the mean pairwise flood-fill distance between
// objects reachable from the entry, normalized by the tiles the entry's fill
// discovers: sum over ordered pairs (i, j) of dist_i(j), divided by
// (accessible-1) * (n-1) * n. accessible is FloodFill's reachable count,
// which includes the entry tile itself; the entry is not a discovered tile.
// Objects unreachable from the entry are skipped.
//
// Postcondition: Returns 0 when fewer than two objects are reachable or the
// fill discovered no tile beyond the entry.
func ExplorationRequirement(g level.Grid, icons level.IconSet, fromEntry level.DistanceMap, objects []level.Position, accessible int, logger *zap.Logger) float64 {
	reachable := make([]level.Position, 0, len(objects))
	for _, o := range objects {
		if !fromEntry.Contains(o) {
			logger.Warn("object unreachable from entry",
				zap.Int("row", o.Row),
				zap.Int("col", o.Col),
			)
			continue
		}
		reachable = append(reachable, o)
	}

	n := len(reachable)
	discovered := accessible - 1
	if n < 2 || discovered <= 0 {
		return 0
	}

	total := 0
	for _, o := range reachable {
		src := o
		dist, _ := level.FloodFill(g, icons, &src)
		for _, other := range reachable {
			d, ok := dist.Distance(other)
			if !ok {
				continue
			}
			total += d
		}
	}
	return float64(total) / float64(discovered) / float64(n-1) / float64(n)
}

// DifficultyCurve buckets enemy distances from the entry into intervals of
// width interval and returns (first bucket - last bucket) / bucket count.
// Bucket i holds enemies with i*interval < d <= (i+1)*interval.
//
// Precondition: interval > 0; values <= 0 use DefaultDifficultyCurveInterval.
func DifficultyCurve(fromEntry level.DistanceMap, enemies []level.Position, interval int, logger *zap.Logger) float64 {
	if interval <= 0 {
		interval = DefaultDifficultyCurveInterval
	}
	buckets := fromEntry.Max()/interval + 1
	heights := make([]int, buckets)
	for _, e := range enemies {
		d, ok := fromEntry.Distance(e)
		if !ok {
			logger.Warn("enemy unreachable from entry",
				zap.Int("row", e.Row),
				zap.Int("col", e.Col),
			)
			continue
		}
		if d == 0 {
			continue
		}
		heights[(d-1)/interval]++
	}
	return float64(heights[0]-heights[buckets-1]) / float64(buckets)
}

// Nonlinearity measures flood coverage around the objects. For each object it
// counts tiles no farther from the entry than the object, plus tiles no
// farther from the exit than the object; the sum over all objects is divided
// by passable * len(objects).
//
// Precondition: passable > 0 and objects is non-empty; otherwise returns 0.
func Nonlinearity(fromEntry, fromExit level.DistanceMap, objects []level.Position, passable int, logger *zap.Logger) float64 {
	if passable <= 0 || len(objects) == 0 {
		return 0
	}
	sum := 0
	for _, o := range objects {
		if d, ok := fromEntry.Distance(o); ok {
			sum += fromEntry.CountWithin(d)
		} else {
			logger.Warn("object unreachable from entry",
				zap.Int("row", o.Row),
				zap.Int("col", o.Col),
			)
		}
		if d, ok := fromExit.Distance(o); ok {
			sum += fromExit.CountWithin(d)
		} else {
			logger.Warn("object unreachable from exit",
				zap.Int("row", o.Row),
				zap.Int("col", o.Col),
			)
		}
	}
	return float64(sum) / float64(passable) / float64(len(objects))
}
