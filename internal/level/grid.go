package level

import (
	"errors"
	"strings"
)

// ErrEmptyLevel is returned by Parse when the text holds no tiles.
var ErrEmptyLevel = errors.New("level: empty level text")

// Position is a (row, col) coordinate in a Grid.
type Position struct {
	Row int
	Col int
}

// directions are the four orthogonal neighbour offsets.
var directions = [4]Position{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Add returns the position offset by d.
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Grid is a two-dimensional array of tile runes. A Grid is never modified
// after construction.
type Grid struct {
	rows [][]rune
}

// Parse splits text into rows on '\n', treating "\r\n" as '\n'. A single
// trailing empty row produced by a final newline is discarded. Rows are not
// padded; call Standardize before any rectangular indexing.
//
// Text is decoded as UTF-8. Every invalid byte decodes to U+FFFD, so distinct
// malformed bytes become the same tile.
//
// Precondition: none.
// Postcondition: Returns a Grid with at least one non-empty row, or
// ErrEmptyLevel.
func Parse(text string) (Grid, error) {
	if text == "" {
		return Grid{}, ErrEmptyLevel
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	rows := make([][]rune, 0, len(lines))
	width := 0
	for _, line := range lines {
		row := []rune(line)
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
	}
	if width == 0 {
		return Grid{}, ErrEmptyLevel
	}
	return Grid{rows: rows}, nil
}

// ParseStandard parses text and standardizes it with the outside icon of icons.
//
// Postcondition: Returns a rectangular Grid, or ErrEmptyLevel.
func ParseStandard(text string, icons IconSet) (Grid, error) {
	g, err := Parse(text)
	if err != nil {
		return Grid{}, err
	}
	return g.Standardize(icons.Icon(Outside)), nil
}

// NewGrid builds a Grid from string rows. It is intended for tests and callers
// that already hold split rows.
func NewGrid(rows ...string) Grid {
	out := make([][]rune, len(rows))
	for i, r := range rows {
		out[i] = []rune(r)
	}
	return Grid{rows: out}
}

// Standardize returns a copy of g with every row right-padded with outside
// to the length of the longest row.
//
// Postcondition: every row of the result has length g.Width();
// g.Standardize(x).Standardize(x) equals g.Standardize(x).
func (g Grid) Standardize(outside rune) Grid {
	width := g.Width()
	rows := make([][]rune, len(g.rows))
	for i, row := range g.rows {
		padded := make([]rune, width)
		copy(padded, row)
		for j := len(row); j < width; j++ {
			padded[j] = outside
		}
		rows[i] = padded
	}
	return Grid{rows: rows}
}

// Height returns the number of rows.
func (g Grid) Height() int { return len(g.rows) }

// Width returns the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g.rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Area returns Height() * Width().
func (g Grid) Area() int { return g.Height() * g.Width() }

// IsRectangular reports whether every row has the same length.
func (g Grid) IsRectangular() bool {
	for _, row := range g.rows {
		if len(row) != len(g.rows[0]) {
			return false
		}
	}
	return true
}

// InBounds reports whether p addresses a tile of g.
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < len(g.rows) && p.Col >= 0 && p.Col < len(g.rows[p.Row])
}

// At returns the rune at p.
//
// Precondition: g.InBounds(p).
func (g Grid) At(p Position) rune {
	return g.rows[p.Row][p.Col]
}

// Row returns row i as a string.
func (g Grid) Row(i int) string {
	return string(g.rows[i])
}

// Rows returns every row as a string.
func (g Grid) Rows() []string {
	out := make([]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = string(row)
	}
	return out
}

// String renders g as newline-separated rows.
func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Each calls fn for every tile in row-major order.
func (g Grid) Each(fn func(p Position, r rune)) {
	for i, row := range g.rows {
		for j, r := range row {
			fn(Position{Row: i, Col: j}, r)
		}
	}
}

// Border returns the positions on the outer edge of g, in row-major order,
// each listed once.
//
// Precondition: g is rectangular.
func (g Grid) Border() []Position {
	h, w := g.Height(), g.Width()
	var out []Position
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if i == 0 || i == h-1 || j == 0 || j == w-1 {
				out = append(out, Position{Row: i, Col: j})
			}
		}
	}
	return out
}
