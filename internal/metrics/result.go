// Package metrics derives structural metrics from an ASCII level: density,
// exploration requirement, difficulty curve, nonlinearity, room count,
// playability and data-quality signals.
package metrics

// Metric keys, as rendered in reports and exposed to scripted predicates.
const (
	KeyDensity                = "density"
	KeyEmptyRatio             = "empty_ratio"
	KeyExplorationRequirement = "exploration_requirement"
	KeyDifficultyCurve        = "difficulty_curve"
	KeyTreasureCount          = "treasure_count"
	KeyEnemyCount             = "enemy_count"
	KeyMapSize                = "map_size"
	KeyNonlinearity           = "nonlinearity"
	KeyRoomCount              = "room_count"
	KeyPlayability            = "playability"
	KeyOtherASCIICount        = "other_ASCII_count"
	KeyEmptyValidation        = "empty_validation"
)

// Keys lists every metric key in report order.
var Keys = []string{
	KeyDensity,
	KeyEmptyRatio,
	KeyExplorationRequirement,
	KeyDifficultyCurve,
	KeyTreasureCount,
	KeyEnemyCount,
	KeyMapSize,
	KeyNonlinearity,
	KeyRoomCount,
	KeyPlayability,
	KeyOtherASCIICount,
	KeyEmptyValidation,
}

// Size is a grid's dimensions, rows first.
type Size struct {
	Rows int `yaml:"rows" json:"rows"`
	Cols int `yaml:"cols" json:"cols"`
}

// Result holds every metric for one level. A nil field means the metric is
// undefined for that level.
type Result struct {
	Density                *float64 `yaml:"density" json:"density"`
	EmptyRatio             *float64 `yaml:"empty_ratio" json:"empty_ratio"`
	ExplorationRequirement *float64 `yaml:"exploration_requirement" json:"exploration_requirement"`
	DifficultyCurve        *float64 `yaml:"difficulty_curve" json:"difficulty_curve"`
	TreasureCount          *int     `yaml:"treasure_count" json:"treasure_count"`
	EnemyCount             *int     `yaml:"enemy_count" json:"enemy_count"`
	MapSize                *Size    `yaml:"map_size" json:"map_size"`
	Nonlinearity           *float64 `yaml:"nonlinearity" json:"nonlinearity"`
	RoomCount              *int     `yaml:"room_count" json:"room_count"`
	Playability            *bool    `yaml:"playability" json:"playability"`
	OtherASCIICount        *int     `yaml:"other_ASCII_count" json:"other_ASCII_count"`
	EmptyValidation        *float64 `yaml:"empty_validation" json:"empty_validation"`
}

// Invalid returns the sentinel result for a level that cannot be analyzed:
// every metric is nil.
func Invalid() Result {
	return Result{}
}

// Valid reports whether r is anything other than the Invalid sentinel.
func (r Result) Valid() bool {
	return r != Result{}
}

// Each calls fn for every non-nil metric in Keys order. Values are float64,
// int, bool, or Size.
func (r Result) Each(fn func(key string, value any)) {
	floats := func(key string, v *float64) {
		if v != nil {
			fn(key, *v)
		}
	}
	ints := func(key string, v *int) {
		if v != nil {
			fn(key, *v)
		}
	}
	floats(KeyDensity, r.Density)
	floats(KeyEmptyRatio, r.EmptyRatio)
	floats(KeyExplorationRequirement, r.ExplorationRequirement)
	floats(KeyDifficultyCurve, r.DifficultyCurve)
	ints(KeyTreasureCount, r.TreasureCount)
	ints(KeyEnemyCount, r.EnemyCount)
	if r.MapSize != nil {
		fn(KeyMapSize, *r.MapSize)
	}
	floats(KeyNonlinearity, r.Nonlinearity)
	ints(KeyRoomCount, r.RoomCount)
	if r.Playability != nil {
		fn(KeyPlayability, *r.Playability)
	}
	ints(KeyOtherASCIICount, r.OtherASCIICount)
	floats(KeyEmptyValidation, r.EmptyValidation)
}

func ptr[T any](v T) *T { return &v }
