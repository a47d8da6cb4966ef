package metrics

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/levelmetrics/internal/level"
)

// DefaultDifficultyCurveInterval is the bucket width, in hops from the entry,
// used by DifficultyCurve when no interval is configured.
const DefaultDifficultyCurveInterval = 5

// Analyzer computes a Result for each level it is given. An Analyzer holds no
// mutable state and is safe for concurrent use.
type Analyzer struct {
	icons    level.IconSet
	interval int
	logger   *zap.Logger
}

// NewAnalyzer creates an Analyzer.
//
// Precondition: icons must be a valid IconSet; logger must be non-nil.
// Postcondition: interval <= 0 is replaced by DefaultDifficultyCurveInterval.
func NewAnalyzer(icons level.IconSet, interval int, logger *zap.Logger) *Analyzer {
	if interval <= 0 {
		interval = DefaultDifficultyCurveInterval
	}
	return &Analyzer{icons: icons, interval: interval, logger: logger}
}

// Icons returns the icon set the Analyzer classifies tiles with.
func (a *Analyzer) Icons() level.IconSet { return a.icons }

// Analyze parses text and computes every metric.
//
// Postcondition: Returns Invalid() when text holds no tiles; never panics.
func (a *Analyzer) Analyze(text string) Result {
	g, err := level.ParseStandard(text, a.icons)
	if err != nil {
		a.logger.Warn("level cannot be analyzed", zap.Error(err))
		return Invalid()
	}
	return a.analyze(g)
}

// AnalyzeGrid standardizes g and computes every metric.
//
// Postcondition: Returns Invalid() when g has no tiles.
func (a *Analyzer) AnalyzeGrid(g level.Grid) Result {
	if g.Area() == 0 {
		a.logger.Warn("level cannot be analyzed", zap.Error(level.ErrEmptyLevel))
		return Invalid()
	}
	return a.analyze(g.Standardize(a.icons.Icon(level.Outside)))
}

func (a *Analyzer) analyze(g level.Grid) Result {
	counts := CountTiles(g, a.icons)
	ents := level.Locate(g, a.icons, a.logger)
	fromEntry, accessible := level.FloodFill(g, a.icons, ents.Entry)
	fromExit, _ := level.FloodFill(g, a.icons, ents.Exit)
	playable := IsPlayable(ents.Entry, ents.Exit, fromEntry)

	r := Result{
		Density:         ptr(Density(counts)),
		EmptyRatio:      ptr(EmptyRatio(counts)),
		TreasureCount:   ptr(counts.Treasures),
		EnemyCount:      ptr(counts.Enemies),
		MapSize:         ptr(Size{Rows: counts.Rows, Cols: counts.Cols}),
		RoomCount:       ptr(CountRooms(g, a.icons)),
		Playability:     ptr(playable),
		OtherASCIICount: ptr(CountOtherASCII(g, a.icons)),
		EmptyValidation: ptr(ValidateEmpty(g, a.icons)),
	}
	if ents.Entry != nil {
		r.ExplorationRequirement = ptr(ExplorationRequirement(g, a.icons, fromEntry, ents.Objects, accessible, a.logger))
		r.DifficultyCurve = ptr(DifficultyCurve(fromEntry, ents.Enemies, a.interval, a.logger))
	}
	if playable {
		passable := len(ents.Objects) + counts.Empty
		r.Nonlinearity = ptr(Nonlinearity(fromEntry, fromExit, ents.Objects, passable, a.logger))
	}

	a.logger.Debug("level analyzed",
		zap.Int("rows", counts.Rows),
		zap.Int("cols", counts.Cols),
		zap.Int("objects", len(ents.Objects)),
		zap.Bool("playable", playable),
	)
	return r
}
