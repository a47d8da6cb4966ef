package metrics

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/levelmetrics/internal/level"
)

// Counts tallies tile roles in a standardized grid.
type Counts struct {
	Rows      int
	Cols      int
	Treasures int
	Enemies   int
	Empty     int
}

// Total returns Rows * Cols.
func (c Counts) Total() int { return c.Rows * c.Cols }

// CountTiles tallies treasures, enemies and empty tiles in g.
//
// Precondition: g is rectangular.
func CountTiles(g level.Grid, icons level.IconSet) Counts {
	c := Counts{Rows: g.Height(), Cols: g.Width()}
	g.Each(func(_ level.Position, r rune) {
		switch icons.Classify(r) {
		case level.Treasure:
			c.Treasures++
		case level.Enemy:
			c.Enemies++
		case level.Empty:
			c.Empty++
		}
	})
	return c
}

// Density returns (treasures + enemies) / total tiles, or 0 for an empty grid.
//
// Postcondition: result is in [0, 1].
func Density(c Counts) float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.Treasures+c.Enemies) / float64(c.Total())
}

// EmptyRatio returns empty tiles / total tiles, or 0 for an empty grid.
//
// Postcondition: result is in [0, 1]; Density(c) + EmptyRatio(c) <= 1.
func EmptyRatio(c Counts) float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.Empty) / float64(c.Total())
}

// CountOtherASCII returns how many distinct runes in g are not icons. Invalid
// UTF-8 in the source text has already collapsed to U+FFFD and counts once.
func CountOtherASCII(g level.Grid, icons level.IconSet) int {
	seen := mapset.New[rune]()
	g.Each(func(_ level.Position, r rune) {
		if !icons.IsIcon(r) {
			seen.Put(r)
		}
	})
	return seen.Size()
}
