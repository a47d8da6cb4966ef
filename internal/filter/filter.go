// Package filter rejects generated levels that are structurally unusable
// before their metrics are trusted: empty text, missing entry or exit,
// unbordered maps, and maps too short to hold a room.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/levelmetrics/internal/level"
	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

// DefaultMinRows is the fewest lines a level may have.
const DefaultMinRows = 5

// Rejection reasons reported in Verdict.Reasons.
const (
	ReasonEmpty     = "level is empty"
	ReasonNoEntry   = "entry is missing"
	ReasonNoExit    = "exit and boss are missing"
	ReasonBorder    = "first or last line is not a border"
	ReasonTooShort  = "too few rows"
	ReasonPredicate = "rejected by predicate"
)

// Rules selects which structural checks apply.
type Rules struct {
	MinRows       int
	RequireBorder bool
	RequireEntry  bool
	RequireExit   bool
}

// DefaultRules enables every check with DefaultMinRows.
func DefaultRules() Rules {
	return Rules{
		MinRows:       DefaultMinRows,
		RequireBorder: true,
		RequireEntry:  true,
		RequireExit:   true,
	}
}

// Predicate decides on a level from its metrics. *scripting.Predicate
// satisfies it.
type Predicate interface {
	Evaluate(r metrics.Result) (bool, error)
}

// Verdict is the outcome of Check.
type Verdict struct {
	Accepted bool     `yaml:"accepted" json:"accepted"`
	Reasons  []string `yaml:"reasons,omitempty" json:"reasons,omitempty"`
}

// Filter applies Rules and an optional Predicate to levels.
type Filter struct {
	rules     Rules
	icons     level.IconSet
	border    *regexp.Regexp
	predicate Predicate
	logger    *zap.Logger
}

// New creates a Filter.
//
// Precondition: icons must be valid; logger must be non-nil.
// Postcondition: predicate may be nil, in which case only Rules apply.
func New(rules Rules, icons level.IconSet, predicate Predicate, logger *zap.Logger) *Filter {
	wall := regexp.QuoteMeta(string(icons.Icon(level.Wall)))
	return &Filter{
		rules:     rules,
		icons:     icons,
		border:    regexp.MustCompile(fmt.Sprintf(`^\s*(?:%s){3,}\s*$`, wall)),
		predicate: predicate,
		logger:    logger,
	}
}

// Check evaluates text against every enabled rule, then against the
// predicate using r. All failing rules are reported, not just the first.
// The predicate only runs when every structural rule passed.
//
// Postcondition: Accepted is true iff Reasons is empty.
func (f *Filter) Check(text string, r metrics.Result) Verdict {
	trimmed := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if trimmed == "" {
		return Verdict{Reasons: []string{ReasonEmpty}}
	}

	var reasons []string
	if f.rules.RequireEntry && !strings.ContainsRune(trimmed, f.icons.Icon(level.Entry)) {
		reasons = append(reasons, ReasonNoEntry)
	}
	if f.rules.RequireExit &&
		!strings.ContainsRune(trimmed, f.icons.Icon(level.Exit)) &&
		!strings.ContainsRune(trimmed, f.icons.Icon(level.Boss)) {
		reasons = append(reasons, ReasonNoExit)
	}

	lines := strings.Split(trimmed, "\n")
	if f.rules.RequireBorder && (!f.border.MatchString(lines[0]) || !f.border.MatchString(lines[len(lines)-1])) {
		reasons = append(reasons, ReasonBorder)
	}
	if len(lines) < f.rules.MinRows {
		reasons = append(reasons, ReasonTooShort)
	}

	if len(reasons) == 0 && f.predicate != nil {
		ok, err := f.predicate.Evaluate(r)
		switch {
		case err != nil:
			f.logger.Warn("predicate failed", zap.Error(err))
			reasons = append(reasons, fmt.Sprintf("%s: %v", ReasonPredicate, err))
		case !ok:
			reasons = append(reasons, ReasonPredicate)
		}
	}

	return Verdict{Accepted: len(reasons) == 0, Reasons: reasons}
}
