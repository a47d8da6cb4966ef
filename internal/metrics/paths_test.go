package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/levelmetrics/internal/level"
	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

func entryFill(t *testing.T, rows ...string) (level.Grid, level.Entities, level.DistanceMap, int) {
	t.Helper()
	icons := level.DefaultIconSet()
	g := level.NewGrid(rows...)
	ents := level.Locate(g, icons, zap.NewNop())
	require.NotNil(t, ents.Entry)
	m, n := level.FloodFill(g, icons, ents.Entry)
	return g, ents, m, n
}

func TestDifficultyCurve_FrontLoaded(t *testing.T) {
	_, ents, m, _ := entryFill(t, "P.E.E....")
	assert.InDelta(t, 1.0, metrics.DifficultyCurve(m, ents.Enemies, 5, zap.NewNop()), 1e-9)
	assert.InDelta(t, 0.2, metrics.DifficultyCurve(m, ents.Enemies, 2, zap.NewNop()), 1e-9)
}

func TestDifficultyCurve_BackLoaded(t *testing.T) {
	_, ents, m, _ := entryFill(t, "P.......E")
	assert.InDelta(t, -0.5, metrics.DifficultyCurve(m, ents.Enemies, 5, zap.NewNop()), 1e-9)
}

func TestDifficultyCurve_Balanced(t *testing.T) {
	_, ents, m, _ := entryFill(t, "P.E.....E")
	assert.InDelta(t, 0.0, metrics.DifficultyCurve(m, ents.Enemies, 5, zap.NewNop()), 1e-9)
}

func TestDifficultyCurve_UnreachableEnemySkipped(t *testing.T) {
	_, ents, m, _ := entryFill(t, "P.#E")
	logger, observed := observedLogger()
	assert.InDelta(t, 0.0, metrics.DifficultyCurve(m, ents.Enemies, 5, logger), 1e-9)
	assert.Equal(t, 1, observed.FilterMessage("enemy unreachable from entry").Len())
}

func TestDifficultyCurve_NonPositiveIntervalUsesDefault(t *testing.T) {
	_, ents, m, _ := entryFill(t, "P.E.E....")
	assert.Equal(t,
		metrics.DifficultyCurve(m, ents.Enemies, metrics.DefaultDifficultyCurveInterval, zap.NewNop()),
		metrics.DifficultyCurve(m, ents.Enemies, 0, zap.NewNop()),
	)
}

func TestExplorationRequirement_Pairwise(t *testing.T) {
	g, ents, m, n := entryFill(t, "PTB")
	got := metrics.ExplorationRequirement(g, level.DefaultIconSet(), m, ents.Objects, n, zap.NewNop())
	// Ordered pair distances: 2 * (1 + 1 + 2) over 2 discovered tiles, 3 objects.
	assert.InDelta(t, 8.0/2.0/2.0/3.0, got, 1e-9)
}

func TestExplorationRequirement_NormalizesByDiscoveredTiles(t *testing.T) {
	g, ents, m, n := entryFill(t,
		"#####",
		"#PT.#",
		"#..B#",
		"#####",
	)
	require.Equal(t, 6, n, "reachable count includes the entry")
	got := metrics.ExplorationRequirement(g, level.DefaultIconSet(), m, ents.Objects, n, zap.NewNop())
	// P-T 1, P-B 3, T-B 2, both directions: 12 over 5 discovered tiles, 3 objects.
	assert.InDelta(t, 12.0/5.0/2.0/3.0, got, 1e-9)
}

func TestExplorationRequirement_NothingDiscovered(t *testing.T) {
	g, ents, m, _ := entryFill(t, "PB")
	assert.Equal(t, 0.0, metrics.ExplorationRequirement(g, level.DefaultIconSet(), m, ents.Objects, 1, zap.NewNop()))
	assert.Equal(t, 0.0, metrics.ExplorationRequirement(g, level.DefaultIconSet(), m, ents.Objects, 0, zap.NewNop()))
}

func TestExplorationRequirement_FewerThanTwoObjects(t *testing.T) {
	g, ents, m, n := entryFill(t, "P..")
	assert.Equal(t, 0.0, metrics.ExplorationRequirement(g, level.DefaultIconSet(), m, ents.Objects, n, zap.NewNop()))
}

func TestNonlinearity_Line(t *testing.T) {
	icons := level.DefaultIconSet()
	g, ents, fromEntry, _ := entryFill(t, "PTB")
	fromExit, _ := level.FloodFill(g, icons, ents.Exit)
	got := metrics.Nonlinearity(fromEntry, fromExit, ents.Objects, len(ents.Objects), zap.NewNop())
	assert.InDelta(t, 12.0/3.0/3.0, got, 1e-9)
}

func TestNonlinearity_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, metrics.Nonlinearity(nil, nil, nil, 10, zap.NewNop()))
	assert.Equal(t, 0.0, metrics.Nonlinearity(nil, nil, []level.Position{{Row: 0, Col: 0}}, 0, zap.NewNop()))
}

func TestNonlinearity_UnreachableObjectWarns(t *testing.T) {
	icons := level.DefaultIconSet()
	g, ents, fromEntry, _ := entryFill(t, "P.B#T")
	fromExit, _ := level.FloodFill(g, icons, ents.Exit)
	logger, observed := observedLogger()
	metrics.Nonlinearity(fromEntry, fromExit, ents.Objects, len(ents.Objects)+1, logger)
	assert.Equal(t, 1, observed.FilterMessage("object unreachable from entry").Len())
	assert.Equal(t, 1, observed.FilterMessage("object unreachable from exit").Len())
}

func TestIsPlayable(t *testing.T) {
	p := level.Position{Row: 0, Col: 0}
	q := level.Position{Row: 0, Col: 2}
	m := level.DistanceMap{p: 0, {Row: 0, Col: 1}: 1, q: 2}
	assert.True(t, metrics.IsPlayable(&p, &q, m))
	assert.False(t, metrics.IsPlayable(nil, &q, m))
	assert.False(t, metrics.IsPlayable(&p, nil, m))
	assert.False(t, metrics.IsPlayable(&p, &level.Position{Row: 5, Col: 5}, m))
}

func TestProperty_CoincidentEntryAndExitPlayable(t *testing.T) {
	icons := level.DefaultIconSet()
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 8).Draw(rt, "width")
		col := rapid.IntRange(0, w-1).Draw(rt, "col")
		row := make([]rune, w)
		for i := range row {
			row[i] = rapid.SampledFrom([]rune{'#', '.'}).Draw(rt, "tile")
		}
		row[col] = 'P'
		g := level.NewGrid(string(row))
		p := level.Position{Row: 0, Col: col}
		m, _ := level.FloodFill(g, icons, &p)
		assert.True(rt, metrics.IsPlayable(&p, &p, m))
		d, ok := m.Distance(p)
		assert.True(rt, ok)
		assert.Equal(rt, 0, d)
	})
}
