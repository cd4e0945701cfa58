package country

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAliases reads a YAML map of raw country token to canonical token,
// e.g. "USA: United States". A missing file is not an error; it yields a
// nil map, which leaves tokens untouched.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading country aliases: %w", err)
	}

	var aliases map[string]string
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parsing country aliases: %w", err)
	}

	return aliases, nil
}
