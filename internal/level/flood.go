package level

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// DistanceMap maps each tile reachable from a single source to its
// shortest 4-directional hop count. Unreachable tiles are absent.
type DistanceMap map[Position]int

// Distance returns the hop count to p and whether p is reachable.
func (m DistanceMap) Distance(p Position) (int, bool) {
	d, ok := m[p]
	return d, ok
}

// Contains reports whether p is reachable.
func (m DistanceMap) Contains(p Position) bool {
	_, ok := m[p]
	return ok
}

// Max returns the largest distance in m, or 0 when m is empty.
func (m DistanceMap) Max() int {
	longest := 0
	for _, d := range m {
		if d > longest {
			longest = d
		}
	}
	return longest
}

// CountWithin returns how many tiles lie at distance <= limit.
func (m DistanceMap) CountWithin(limit int) int {
	n := 0
	for _, d := range m {
		if d <= limit {
			n++
		}
	}
	return n
}

// FloodFill runs a breadth-first search from source over every tile that is
// not a wall, moving up, down, left and right.
//
// Precondition: g is rectangular.
// Postcondition: m[*source] == 0; every key is a non-wall tile connected to
// source; reachable == len(m). A nil or out-of-bounds source yields an
// empty map and 0.
func FloodFill(g Grid, icons IconSet, source *Position) (m DistanceMap, reachable int) {
	m = make(DistanceMap)
	if source == nil || !g.InBounds(*source) {
		return m, 0
	}
	wall := icons.Icon(Wall)

	q := queue.New[Position]()
	q.Enqueue(*source)
	m[*source] = 0
	for !q.Empty() {
		cur := q.Dequeue()
		for _, d := range directions {
			next := cur.Add(d)
			if !g.InBounds(next) || m.Contains(next) || g.At(next) == wall {
				continue
			}
			m[next] = m[cur] + 1
			q.Enqueue(next)
		}
	}
	return m, len(m)
}

// Reach marks in visited every tile connected to any seed through tiles for
// which blocked returns false. Seeds that are blocked or already visited are
// ignored.
//
// Precondition: visited is non-nil; g is rectangular.
// Postcondition: Returns the number of tiles newly added to visited.
func Reach(g Grid, seeds []Position, blocked func(rune) bool, visited mapset.Set[Position]) int {
	added := 0
	q := queue.New[Position]()
	for _, s := range seeds {
		if !g.InBounds(s) || visited.Has(s) || blocked(g.At(s)) {
			continue
		}
		visited.Put(s)
		added++
		q.Enqueue(s)
	}
	for !q.Empty() {
		cur := q.Dequeue()
		for _, d := range directions {
			next := cur.Add(d)
			if !g.InBounds(next) || visited.Has(next) || blocked(g.At(next)) {
				continue
			}
			visited.Put(next)
			added++
			q.Enqueue(next)
		}
	}
	return added
}

// Components counts the 4-connected regions of tiles for which blocked
// returns false, scanning in row-major order.
//
// Precondition: g is rectangular.
func Components(g Grid, blocked func(rune) bool) int {
	visited := mapset.New[Position]()
	count := 0
	g.Each(func(p Position, r rune) {
		if visited.Has(p) || blocked(r) {
			return
		}
		count++
		Reach(g, []Position{p}, blocked, visited)
	})
	return count
}
