package level_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/levelmetrics/internal/level"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestFindPositions_RowMajor(t *testing.T) {
	g := level.NewGrid("E.E", ".E.")
	got := level.FindPositions(g, 'E')
	assert.Equal(t, []level.Position{{0, 0}, {0, 2}, {1, 1}}, got)
}

func TestLocate_Simple(t *testing.T) {
	logger, logs := newObservedLogger()
	g := level.NewGrid(
		"#######",
		"#P.E.B#",
		"#..T..#",
		"#######",
	)
	e := level.Locate(g, level.DefaultIconSet(), logger)
	require.NotNil(t, e.Entry)
	require.NotNil(t, e.Exit)
	assert.Equal(t, level.Position{Row: 1, Col: 1}, *e.Entry)
	assert.Equal(t, level.Position{Row: 1, Col: 5}, *e.Exit)
	assert.Equal(t, level.Boss, e.ExitRole)
	assert.Equal(t, []level.Position{{1, 3}}, e.Enemies)
	assert.Equal(t, []level.Position{{2, 3}}, e.Treasures)
	assert.Equal(t, []level.Position{{2, 3}, {1, 3}, {1, 1}, {1, 5}}, e.Objects)
	assert.Zero(t, logs.Len())
}

func TestLocate_MissingEntryAndExitWarn(t *testing.T) {
	logger, logs := newObservedLogger()
	e := level.Locate(level.NewGrid("#...#"), level.DefaultIconSet(), logger)
	assert.Nil(t, e.Entry)
	assert.Nil(t, e.Exit)
	assert.Empty(t, e.Objects)
	assert.Equal(t, 1, logs.FilterMessage("entry not found").Len())
	assert.Equal(t, 1, logs.FilterMessage("exit not found").Len())
}

func TestLocate_DuplicateEntryTakesFirst(t *testing.T) {
	logger, logs := newObservedLogger()
	e := level.Locate(level.NewGrid("..P", "P.B"), level.DefaultIconSet(), logger)
	require.NotNil(t, e.Entry)
	assert.Equal(t, level.Position{Row: 0, Col: 2}, *e.Entry)
	assert.Equal(t, 1, logs.FilterMessage("entry not unique").Len())
}

func TestLocate_ExitRowDecidesIcon(t *testing.T) {
	logger, _ := newObservedLogger()
	// The first row holding either icon has only an exit, so the exit wins
	// even though a boss appears further down.
	e := level.Locate(level.NewGrid("P.>", "..B"), level.DefaultIconSet(), logger)
	require.NotNil(t, e.Exit)
	assert.Equal(t, level.Exit, e.ExitRole)
	assert.Equal(t, level.Position{Row: 0, Col: 2}, *e.Exit)
}

func TestLocate_BossBeatsExitInSameRow(t *testing.T) {
	logger, _ := newObservedLogger()
	e := level.Locate(level.NewGrid("P>B", "..."), level.DefaultIconSet(), logger)
	require.NotNil(t, e.Exit)
	assert.Equal(t, level.Boss, e.ExitRole)
	assert.Equal(t, level.Position{Row: 0, Col: 2}, *e.Exit)
}

func TestLocate_DuplicateBossWarns(t *testing.T) {
	logger, logs := newObservedLogger()
	e := level.Locate(level.NewGrid("PB.", "..B"), level.DefaultIconSet(), logger)
	require.NotNil(t, e.Exit)
	assert.Equal(t, level.Position{Row: 0, Col: 1}, *e.Exit)
	assert.Equal(t, 1, logs.FilterMessage("boss not unique").Len())
}
