package metrics

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/levelmetrics/internal/level"
)

// CountRooms returns the number of 4-connected regions of tiles that are not
// walls, doors or outside.
//
// Precondition: g is rectangular.
func CountRooms(g level.Grid, icons level.IconSet) int {
	return level.Components(g, func(r rune) bool {
		switch icons.Classify(r) {
		case level.Wall, level.Door, level.Outside:
			return true
		default:
			return false
		}
	})
}

// ValidateEmpty scores how well the level separates outside from inside.
// Tiles reachable from the border without crossing a wall or door are outer
// and should hold the outside icon; every other non-wall tile is inner and
// should not.
//
// Precondition: g is rectangular.
// Postcondition: Returns correct / non-wall tiles, or 0 when there are none.
func ValidateEmpty(g level.Grid, icons level.IconSet) float64 {
	wall, door, outside := icons.Icon(level.Wall), icons.Icon(level.Door), icons.Icon(level.Outside)

	outer := mapset.New[level.Position]()
	level.Reach(g, g.Border(), func(r rune) bool { return r == wall || r == door }, outer)

	correct, total := 0, 0
	g.Each(func(p level.Position, r rune) {
		if r == wall {
			return
		}
		total++
		if outer.Has(p) == (r == outside) {
			correct++
		}
	})
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
