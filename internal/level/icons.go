// Package level provides the ASCII level model: tile roles, icon sets, grids,
// positions, breadth-first flood fill, and entity location.
package level

import (
	"fmt"
	"sort"
	"strings"
)

// Role is the semantic meaning of a tile character.
type Role string

// Tile roles. Every icon maps to exactly one role; runes outside the icon set
// classify as Other.
const (
	Enemy    Role = "enemy"
	Treasure Role = "treasure"
	Entry    Role = "entry"
	Exit     Role = "exit"
	Boss     Role = "boss"
	Empty    Role = "empty"
	Wall     Role = "wall"
	Outside  Role = "outside"
	Door     Role = "door"
	Other    Role = "other"
)

// Roles lists every role an IconSet must assign, in canonical order.
var Roles = []Role{Enemy, Treasure, Entry, Exit, Boss, Empty, Wall, Outside, Door}

// IsObject reports whether r is counted as an object for exploration and
// nonlinearity (enemies, treasures, entry, exit or boss).
func (r Role) IsObject() bool {
	switch r {
	case Enemy, Treasure, Entry, Exit, Boss:
		return true
	default:
		return false
	}
}

// IconSet is an immutable mapping between tile roles and their runes.
//
// The zero value is not usable; construct with NewIconSet or DefaultIconSet.
type IconSet struct {
	byRole map[Role]rune
	byRune map[rune]Role
}

// DefaultIcons are the icons emitted by the level generator.
var DefaultIcons = map[Role]rune{
	Enemy:    'E',
	Treasure: 'T',
	Entry:    'P',
	Exit:     '>',
	Boss:     'B',
	Empty:    '.',
	Wall:     '#',
	Outside:  ' ',
	Door:     '/',
}

// DefaultIconSet returns the IconSet built from DefaultIcons.
//
// Postcondition: Returns a valid IconSet.
func DefaultIconSet() IconSet {
	set, err := NewIconSet(DefaultIcons)
	if err != nil {
		panic("level: DefaultIcons invalid: " + err.Error())
	}
	return set
}

// NewIconSet builds an IconSet from a role-to-rune table.
//
// Precondition: icons assigns every role in Roles.
// Postcondition: Returns a valid IconSet, or an error naming every missing
// role and every rune shared by more than one role.
func NewIconSet(icons map[Role]rune) (IconSet, error) {
	var errs []string
	set := IconSet{
		byRole: make(map[Role]rune, len(Roles)),
		byRune: make(map[rune]Role, len(Roles)),
	}
	for _, role := range Roles {
		r, ok := icons[role]
		if !ok {
			errs = append(errs, fmt.Sprintf("role %q has no icon", role))
			continue
		}
		if prev, dup := set.byRune[r]; dup {
			errs = append(errs, fmt.Sprintf("icon %q assigned to both %q and %q", r, prev, role))
			continue
		}
		set.byRole[role] = r
		set.byRune[r] = role
	}
	for role := range icons {
		if !knownRole(role) {
			errs = append(errs, fmt.Sprintf("unknown role %q", role))
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return IconSet{}, fmt.Errorf("invalid icon set: %s", strings.Join(errs, "; "))
	}
	return set, nil
}

func knownRole(role Role) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Icon returns the rune assigned to role.
//
// Precondition: role is one of Roles.
func (s IconSet) Icon(role Role) rune {
	return s.byRole[role]
}

// Classify returns the role of r, or Other when r is not an icon.
func (s IconSet) Classify(r rune) Role {
	if role, ok := s.byRune[r]; ok {
		return role
	}
	return Other
}

// IsIcon reports whether r belongs to the icon set.
func (s IconSet) IsIcon(r rune) bool {
	_, ok := s.byRune[r]
	return ok
}
