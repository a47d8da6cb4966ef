package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/levelmetrics/internal/level"
	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

func TestCountRooms(t *testing.T) {
	icons := level.DefaultIconSet()
	cases := []struct {
		name string
		rows []string
		want int
	}{
		{"single room", []string{"#####", "#...#", "#.P.#", "#####"}, 1},
		{"split by wall", []string{"#######", "#..#..#", "#..#..#", "#######"}, 2},
		{"split by door", []string{"#######", "#../..#", "#######"}, 2},
		{"outside is not a room", []string{"   ###", "   #.#", "   ###"}, 1},
		{"all walls", []string{"###", "###"}, 0},
		{"diagonal does not connect", []string{"###", "#.#", "##.", "###"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.CountRooms(level.NewGrid(tc.rows...), icons))
		})
	}
}

func TestValidateEmpty(t *testing.T) {
	icons := level.DefaultIconSet()
	cases := []struct {
		name string
		rows []string
		want float64
	}{
		{"well formed", []string{"  ###  ", "  #.#  ", "  ###  "}, 1.0},
		{"inverted", []string{".###", ".# #", ".###"}, 0.0},
		{"half right", []string{" ###", ".# #", " #.#", " ###"}, 4.0 / 6.0},
		{"door seals the room", []string{"#/#", "#.#", "###"}, 1.0},
		{"only walls", []string{"###"}, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, metrics.ValidateEmpty(level.NewGrid(tc.rows...), icons), 1e-9)
		})
	}
}

func TestCountTiles(t *testing.T) {
	c := metrics.CountTiles(level.NewGrid("#PTTE.", "#..EB "), level.DefaultIconSet())
	assert.Equal(t, metrics.Counts{Rows: 2, Cols: 6, Treasures: 2, Enemies: 2, Empty: 3}, c)
	assert.Equal(t, 12, c.Total())
	assert.InDelta(t, 4.0/12.0, metrics.Density(c), 1e-9)
	assert.InDelta(t, 3.0/12.0, metrics.EmptyRatio(c), 1e-9)
}

func TestDensity_EmptyCounts(t *testing.T) {
	assert.Equal(t, 0.0, metrics.Density(metrics.Counts{}))
	assert.Equal(t, 0.0, metrics.EmptyRatio(metrics.Counts{}))
}
