package level

import (
	"strings"

	"go.uber.org/zap"
)

// Entities holds the located objects of a level.
type Entities struct {
	// Entry is the start tile, or nil when the level has none.
	Entry *Position
	// Exit is the goal tile (boss or exit), or nil when the level has none.
	Exit *Position
	// ExitRole is Boss or Exit when Exit is non-nil, empty otherwise.
	ExitRole  Role
	Enemies   []Position
	Treasures []Position
	// Objects is treasures, enemies, then entry and exit when present.
	Objects []Position
}

// FindPositions returns every position holding icon, in row-major order.
func FindPositions(g Grid, icon rune) []Position {
	var out []Position
	g.Each(func(p Position, r rune) {
		if r == icon {
			out = append(out, p)
		}
	})
	return out
}

// Locate finds entry, exit, enemies and treasures in g. Missing or duplicate
// entry/exit tiles are logged at warn level; duplicates resolve to the first
// match in row-major order.
//
// Precondition: logger is non-nil.
// Postcondition: Objects contains no duplicate positions.
func Locate(g Grid, icons IconSet, logger *zap.Logger) Entities {
	var e Entities
	e.Entry = first(g, icons.Icon(Entry), "entry", logger)

	if role, ok := exitRole(g, icons); ok {
		e.ExitRole = role
		e.Exit = first(g, icons.Icon(role), string(role), logger)
	} else {
		logger.Warn("exit not found",
			zap.String("exit_icon", string(icons.Icon(Exit))),
			zap.String("boss_icon", string(icons.Icon(Boss))),
		)
	}

	e.Treasures = FindPositions(g, icons.Icon(Treasure))
	e.Enemies = FindPositions(g, icons.Icon(Enemy))

	objects := make([]Position, 0, len(e.Treasures)+len(e.Enemies)+2)
	objects = append(objects, e.Treasures...)
	objects = append(objects, e.Enemies...)
	if e.Entry != nil {
		objects = append(objects, *e.Entry)
	}
	if e.Exit != nil {
		objects = append(objects, *e.Exit)
	}
	e.Objects = objects
	return e
}

// exitRole scans rows top to bottom. In each row a boss icon wins over an
// exit icon; the first row holding either decides.
func exitRole(g Grid, icons IconSet) (Role, bool) {
	boss, exit := string(icons.Icon(Boss)), string(icons.Icon(Exit))
	for i := 0; i < g.Height(); i++ {
		row := g.Row(i)
		if strings.Contains(row, boss) {
			return Boss, true
		}
		if strings.Contains(row, exit) {
			return Exit, true
		}
	}
	return "", false
}

func first(g Grid, icon rune, name string, logger *zap.Logger) *Position {
	found := FindPositions(g, icon)
	if len(found) == 0 {
		if name == string(Entry) {
			logger.Warn("entry not found", zap.String("icon", string(icon)))
		}
		return nil
	}
	if len(found) > 1 {
		logger.Warn(name+" not unique",
			zap.String("icon", string(icon)),
			zap.Int("count", len(found)),
			zap.Int("row", found[0].Row),
			zap.Int("col", found[0].Col),
		)
	}
	p := found[0]
	return &p
}
