package level

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// yamlIconFile is the top-level YAML structure for icon set files.
type yamlIconFile struct {
	Icons map[string]string `yaml:"icons"`
}

// LoadIconSetFromFile reads an icon set YAML file.
//
// Precondition: path must point to a readable YAML file.
// Postcondition: Returns a valid IconSet or a non-nil error.
func LoadIconSetFromFile(path string) (IconSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return IconSet{}, fmt.Errorf("reading icon file %s: %w", path, err)
	}
	set, err := LoadIconSetFromBytes(data)
	if err != nil {
		return IconSet{}, fmt.Errorf("loading icon file %s: %w", path, err)
	}
	return set, nil
}

// LoadIconSetFromBytes parses an icon set from YAML. Roles the document omits
// keep their DefaultIcons rune.
//
// Precondition: every value under "icons" is a single character.
// Postcondition: Returns a valid IconSet or a non-nil error.
func LoadIconSetFromBytes(data []byte) (IconSet, error) {
	var file yamlIconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return IconSet{}, fmt.Errorf("parsing icon YAML: %w", err)
	}

	icons := make(map[Role]rune, len(DefaultIcons))
	for role, r := range DefaultIcons {
		icons[role] = r
	}

	keys := make([]string, 0, len(file.Icons))
	for k := range file.Icons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := file.Icons[k]
		if utf8.RuneCountInString(v) != 1 {
			return IconSet{}, fmt.Errorf("icon for %q must be a single character, got %q", k, v)
		}
		r, _ := utf8.DecodeRuneInString(v)
		icons[Role(k)] = r
	}
	return NewIconSet(icons)
}
