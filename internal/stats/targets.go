package stats

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/levelmetrics/internal/metrics"
)

// Target holds the parameters a level was requested with. A nil field was
// not requested and is not compared.
type Target struct {
	MapSize       *metrics.Size `yaml:"map_size"`
	RoomCount     *int          `yaml:"room_count"`
	EnemyCount    *int          `yaml:"enemy_count"`
	TreasureCount *int          `yaml:"treasure_count"`
}

// Pair couples a Target with the metrics measured on the level generated for it.
type Pair struct {
	Target   Target
	Measured metrics.Result
}

// CompareTargets summarizes the absolute difference between each requested
// parameter and its measured value. Pairs whose measurement is undefined for
// a parameter contribute nothing to that parameter.
//
// Postcondition: Keys are drawn from map_size.rows, map_size.cols,
// room_count, enemy_count and treasure_count.
func CompareTargets(pairs []Pair) Summary {
	s := samples{}
	diffInt := func(key string, want, got *int) {
		if want != nil && got != nil {
			s.add(key, math.Abs(float64(*want-*got)))
		}
	}
	for _, p := range pairs {
		t, m := p.Target, p.Measured
		if t.MapSize != nil && m.MapSize != nil {
			s.add(KeyMapSizeRows, math.Abs(float64(t.MapSize.Rows-m.MapSize.Rows)))
			s.add(KeyMapSizeCols, math.Abs(float64(t.MapSize.Cols-m.MapSize.Cols)))
		}
		diffInt(metrics.KeyRoomCount, t.RoomCount, m.RoomCount)
		diffInt(metrics.KeyEnemyCount, t.EnemyCount, m.EnemyCount)
		diffInt(metrics.KeyTreasureCount, t.TreasureCount, m.TreasureCount)
	}
	return s.summary()
}

// yamlTargetsFile is the YAML document shape for a targets file.
type yamlTargetsFile struct {
	Targets map[string]Target `yaml:"targets"`
}

// LoadTargetsFromFile reads targets keyed by level name from a YAML file.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns the targets or a non-nil error.
func LoadTargetsFromFile(path string) (map[string]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets file %q: %w", path, err)
	}
	return LoadTargetsFromBytes(data)
}

// LoadTargetsFromBytes parses targets keyed by level name from YAML bytes.
//
// Postcondition: Returns the targets or a non-nil error when the YAML is
// malformed or a map_size has a negative dimension.
func LoadTargetsFromBytes(data []byte) (map[string]Target, error) {
	var f yamlTargetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing targets YAML: %w", err)
	}
	for name, t := range f.Targets {
		if t.MapSize != nil && (t.MapSize.Rows < 0 || t.MapSize.Cols < 0) {
			return nil, fmt.Errorf("target %q: map_size must be non-negative", name)
		}
	}
	if f.Targets == nil {
		f.Targets = map[string]Target{}
	}
	return f.Targets, nil
}
